package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/core"
	ports "tally/internal/sheets"
)

// Config selects the spreadsheet and carries OAuth credentials.
type Config struct {
	SpreadsheetID string
	SheetName     string
	ClientJSON    []byte
	TokenJSON     []byte
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string

	attempts   uint
	retryDelay time.Duration
}

var _ ports.Mirror = (*Client)(nil)

// LoadCredentials resolves the OAuth client and token, preferring inline
// JSON over files.
func LoadCredentials(clientFile, clientJSON, tokenFile, tokenJSON string) (client, token []byte, err error) {
	client, err = inlineOrFile(clientJSON, clientFile, "OAuth client")
	if err != nil {
		return nil, nil, err
	}
	token, err = inlineOrFile(tokenJSON, tokenFile, "OAuth token")
	if err != nil {
		return nil, nil, err
	}
	return client, token, nil
}

func inlineOrFile(inline, path, what string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inline) != "":
		return []byte(inline), nil
	case strings.TrimSpace(path) != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s file: %w", what, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("missing %s credentials", what)
	}
}

// New builds a Sheets client authorized with the stored OAuth token.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(cfg.SheetName) == "" {
		cfg.SheetName = "Expenses"
	}

	oauthCfg, err := goauth.ConfigFromJSON(cfg.ClientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(cfg.TokenJSON, &tok); err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	// The token source refreshes through the pooled transport.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, newHTTPClientWithPooling())
	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(oauthCfg.Client(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created",
		"component", "sheets",
		"spreadsheet_id", cfg.SpreadsheetID,
		"sheet", cfg.SheetName)

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		attempts:      3,
		retryDelay:    60 * time.Second,
	}, nil
}

// newHTTPClientWithPooling creates an HTTP client tuned for the Sheets API
// with connection pooling and conservative timeouts.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// EnsureHeader writes the header row when the sheet is empty.
func (c *Client) EnsureHeader(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A1:H1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header %s: %w", rng, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]any, len(ports.Header))
	for i, h := range ports.Header {
		header[i] = h
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{header}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	slog.InfoContext(ctx, "Wrote mirror header", "component", "sheets", "sheet", c.sheetName)
	return nil
}

// Append adds the expenses as rows in one API call.
func (c *Client) Append(ctx context.Context, expenses []core.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", nil
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	values := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			return "", fmt.Errorf("validation failed for expense %d: %w", e.ID, err)
		}
		values = append(values, expenseRow(e))
	}

	var ref string
	err := c.withRetry(ctx, func() error {
		resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.sheetName+"!A:H", &gsheet.ValueRange{Values: values}).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		if resp.Updates != nil {
			ref = resp.Updates.UpdatedRange
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}
	return ref, nil
}

// Delete removes matching rows, bottom-up so indexes stay valid.
func (c *Client) Delete(ctx context.Context, userID int64, expenseIDs []int64) (int, error) {
	if c.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}

	rng := c.sheetName + "!A:H"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := matchingRows(resp.Values, userID, expenseIDs)
	if len(rows) == 0 {
		return 0, nil
	}

	sheetID, err := c.sheetID(ctx)
	if err != nil {
		return 0, err
	}
	requests := make([]*gsheet.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, &gsheet.Request{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row),
					EndIndex:   int64(row + 1),
				},
			},
		})
	}

	err = c.withRetry(ctx, func() error {
		_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{Requests: requests}).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete rows: %w", err)
	}
	return len(rows), nil
}

func (c *Client) sheetID(ctx context.Context) (int64, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}

// withRetry retries fn while the API answers 429.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.RetryIf(isRateLimited),
		retry.OnRetry(func(n uint, err error) {
			slog.WarnContext(ctx, "Sheets rate limited, will retry", "component", "sheets", "attempt", n+1, "error", err)
		}),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}

func expenseRow(e core.Expense) []any {
	return []any{
		e.Date.String(),
		e.Description,
		e.Amount.Major(),
		e.CategoryName,
		e.SubcategoryName,
		e.Notes,
		e.UserID,
		e.ID,
	}
}

// matchingRows returns 0-based row indexes in descending order. Rows whose
// user or id cell does not parse, such as the header, never match.
func matchingRows(values [][]any, userID int64, expenseIDs []int64) []int {
	wanted := make(map[int64]bool, len(expenseIDs))
	for _, id := range expenseIDs {
		wanted[id] = true
	}

	var out []int
	for i, row := range values {
		if len(row) <= ports.ColExpenseID {
			continue
		}
		owner, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[ports.ColUser])), 10, 64)
		if err != nil || owner != userID {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[ports.ColExpenseID])), 10, 64)
		if err != nil {
			continue
		}
		if len(wanted) == 0 || wanted[id] {
			out = append(out, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
