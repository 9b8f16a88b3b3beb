package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"kakei/internal/core"
	applog "kakei/internal/log"
	ports "kakei/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Header is written as the first row of the target sheet on every export.
var Header = []any{"id", "date", "category", "amount", "memo"}

// Config selects the spreadsheet and the credentials used to reach it.
type Config struct {
	SpreadsheetID string
	SheetName     string
	// Inline service account JSON; takes precedence over CredentialsFile.
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.Exporter = (*Client)(nil)

// New creates a Sheets exporter authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, cfg.SheetName), nil
}

// NewWithService wraps an already configured service. An empty sheet name
// defaults to "Expenses".
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Expenses"
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Falls back to GOOGLE_APPLICATION_CREDENTIALS when neither field is set.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	inline := strings.TrimSpace(cfg.CredentialsJSON)
	file := strings.TrimSpace(cfg.CredentialsFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		applog.ForComponent(ctx, applog.ComponentSync).InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(inline)
	case file != "":
		applog.ForComponent(ctx, applog.ComponentSync).InfoContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Export replaces the sheet contents with a header row followed by one row
// per record, in the order given.
func (c *Client) Export(ctx context.Context, records []core.Record) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := sheetRange(c.sheetName, "A:E")
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", clearRange, err)
	}

	writeRange := sheetRange(c.sheetName, "A1")
	vr := &gsheet.ValueRange{Values: Rows(records)}
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", writeRange, err)
	}

	applog.ForComponent(ctx, applog.ComponentSync).InfoContext(ctx, "Exported records to Google Sheets",
		"sheet", c.sheetName,
		"count", len(records),
		"updated_rows", resp.UpdatedRows)
	return nil
}

// sheetRange builds an A1 range on the named sheet. The name is always
// quoted so spaces and punctuation are accepted.
func sheetRange(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// Rows renders the header and one row per record.
func Rows(records []core.Record) [][]any {
	out := make([][]any, 0, len(records)+1)
	out = append(out, Header)
	for _, r := range records {
		out = append(out, []any{r.ID, r.Date.String(), r.Category, r.Amount, r.Memo})
	}
	return out
}
