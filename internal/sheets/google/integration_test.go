//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"

	"tally/internal/core"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_AppendAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}
	clientJSON, tokenJSON, err := LoadCredentials(
		os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"), os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"),
		os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"), os.Getenv("GOOGLE_OAUTH_TOKEN_JSON"))
	if err != nil {
		t.Skipf("OAuth credentials not configured: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := New(ctx, Config{
		SpreadsheetID: spreadsheetID,
		SheetName:     os.Getenv("GOOGLE_SHEET_NAME"),
		ClientJSON:    clientJSON,
		TokenJSON:     tokenJSON,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	if err := client.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}

	// A user id no real account will have
	userID := time.Now().UnixNano()
	e := core.Expense{
		ID:           1,
		UserID:       userID,
		Date:         core.DateOf(time.Now()),
		Description:  "integration test",
		Amount:       core.Money{Cents: 123},
		CategoryID:   1,
		CategoryName: "Test",
	}

	ref, err := client.Append(ctx, []core.Expense{e})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	t.Logf("appended %s", ref)

	removed, err := client.Delete(ctx, userID, nil)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed row, got %d", removed)
	}
}
