package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Set TALLY_PG_INTEGRATION=1 to run the suite against a real Postgres.
func TestPostgresRepository(t *testing.T) {
	if os.Getenv("TALLY_PG_INTEGRATION") == "" {
		t.Skip("TALLY_PG_INTEGRATION not set")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("tally"),
		postgres.WithUsername("tally"),
		postgres.WithPassword("tally"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := NewPostgresRepository(dsn, 5)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	runStoreSuite(t, repo)
}
