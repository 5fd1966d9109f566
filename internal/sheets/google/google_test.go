package google

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"tally/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if err == nil || err.Error() != "missing spreadsheet id" {
		t.Fatalf("expected missing spreadsheet id error, got %v", err)
	}
}

func TestNew_InvalidClientJSON(t *testing.T) {
	_, err := New(context.Background(), Config{
		SpreadsheetID: "test-id",
		ClientJSON:    []byte("invalid-json"),
		TokenJSON:     []byte(`{"access_token":"test"}`),
	})
	if err == nil || !strings.Contains(err.Error(), "oauth config") {
		t.Fatalf("expected oauth config error, got %v", err)
	}
}

func TestNew_InvalidToken(t *testing.T) {
	client := `{"installed":{"client_id":"id","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
	_, err := New(context.Background(), Config{
		SpreadsheetID: "test-id",
		ClientJSON:    []byte(client),
		TokenJSON:     []byte("{"),
	})
	if err == nil || !strings.Contains(err.Error(), "oauth token") {
		t.Fatalf("expected oauth token error, got %v", err)
	}
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()
	clientPath := filepath.Join(dir, "client.json")
	if err := os.WriteFile(clientPath, []byte(`{"from":"file"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	client, token, err := LoadCredentials(clientPath, "", "", `{"access_token":"inline"}`)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if string(client) != `{"from":"file"}` || !strings.Contains(string(token), "inline") {
		t.Errorf("unexpected credentials %s / %s", client, token)
	}

	if _, _, err := LoadCredentials("", "", "", "x"); err == nil || !strings.Contains(err.Error(), "OAuth client") {
		t.Errorf("expected missing client error, got %v", err)
	}
	if _, _, err := LoadCredentials("", "{}", filepath.Join(dir, "absent.json"), ""); err == nil {
		t.Error("expected error for unreadable token file")
	}
}

func TestClient_UninitializedService(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: "Expenses"}
	e := core.Expense{ID: 1, UserID: 1, Date: core.NewDate(2026, 1, 2), Description: "x", Amount: core.Money{Cents: 100}, CategoryID: 1}

	if _, err := c.Append(context.Background(), []core.Expense{e}); err == nil {
		t.Error("expected error without a service")
	}
	if ref, err := c.Append(context.Background(), nil); err != nil || ref != "" {
		t.Errorf("empty append should be a no-op, got %q %v", ref, err)
	}
	if _, err := c.Delete(context.Background(), 1, nil); err == nil {
		t.Error("expected error without a service")
	}
}

func TestExpenseRow(t *testing.T) {
	row := expenseRow(core.Expense{
		ID:              42,
		UserID:          7,
		Date:            core.NewDate(2026, 3, 9),
		Description:     "Groceries",
		Amount:          core.Money{Cents: 1234},
		CategoryName:    "Food",
		SubcategoryName: "Market",
	})
	if len(row) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(row))
	}
	if row[0] != "2026-03-09" || row[2] != 12.34 || row[6] != int64(7) || row[7] != int64(42) {
		t.Errorf("unexpected row %v", row)
	}
}

func TestMatchingRows(t *testing.T) {
	values := [][]any{
		{"Date", "Description", "Amount", "Category", "Subcategory", "Notes", "User", "Expense ID"},
		{"2026-01-01", "a", 1, "c", "", "", "1", "10"},
		{"2026-01-02", "b", 1, "c", "", "", "2", "11"},
		{"2026-01-03", "c", 1, "c", "", "", "1", "12"},
		{"short row"},
	}

	if got := matchingRows(values, 1, []int64{12}); len(got) != 1 || got[0] != 3 {
		t.Errorf("single id: got %v", got)
	}
	got := matchingRows(values, 1, nil)
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Errorf("all rows of user should be descending, got %v", got)
	}
	if got := matchingRows(values, 3, nil); len(got) != 0 {
		t.Errorf("unknown user: got %v", got)
	}
}

func TestIsRateLimited(t *testing.T) {
	if !isRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}) {
		t.Error("429 should be retried")
	}
	if isRateLimited(&googleapi.Error{Code: http.StatusForbidden}) {
		t.Error("403 should not be retried")
	}
	if isRateLimited(errors.New("boom")) {
		t.Error("plain errors should not be retried")
	}
}
