package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataBackend = "postgres"
	cfg.DatabaseURL = "postgres://u:p@localhost/tally"

	got, err := FromAppConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, PostgresBackend, got.Type)
	assert.Equal(t, cfg.DatabaseURL, got.DatabaseURL)
	assert.Equal(t, cfg.DBMaxOpenConns, got.MaxOpenConns)

	cfg.DataBackend = "sheets"
	_, err = FromAppConfig(cfg)
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"postgres without url", Config{Type: PostgresBackend}, true},
		{"unknown type", Config{Type: "memory"}, true},
		{"amqp without queue", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db", AMQPURL: "amqp://localhost", AMQPExchange: "tally"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	assert.Equal(t, []string{"sqlite", "postgres"}, GetBackendTypeStrings())
}

func TestCreateBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(ctx, Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "tally.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Store)
	assert.Nil(t, result.Events)
	assert.Nil(t, result.Publisher(), "no client must give an untyped nil publisher")

	u, err := result.Store.EnsureUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	assert.NoError(t, result.Cleanup())
}
