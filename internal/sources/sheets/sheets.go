// Package sheets reads a ledger from a Google Sheets range.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/sources"
)

var _ sources.RowSource = (*Client)(nil)

// Client reads one range of a spreadsheet. The first row of the range is the
// header.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
	logger        *log.Logger
}

// New creates a Sheets source authenticated with service account
// credentials taken from the environment.
func New(ctx context.Context, spreadsheetID, readRange string, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	creds, err := credentialsFromEnv()
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, readRange, logger), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, readRange string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

// credentialsFromEnv reads GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func credentialsFromEnv() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

func (c *Client) Name() string {
	return "sheets:" + c.spreadsheetID + "/" + c.readRange
}

// Rows fetches the range and maps it into raw rows.
func (c *Client) Rows(ctx context.Context) ([]core.RawRow, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("%w: sheets service not initialized", core.ErrSourceUnavailable)
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrSourceUnavailable, c.readRange, err)
	}
	rows := rowsFromValues(resp.Values)
	c.logger.DebugContext(ctx, "Sheet range read",
		log.FieldSpreadsheet, c.spreadsheetID,
		log.FieldRows, len(rows))
	return rows, nil
}

func rowsFromValues(values [][]interface{}) []core.RawRow {
	if len(values) == 0 {
		return []core.RawRow{}
	}
	header := toStrings(values[0])
	records := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		records = append(records, toStrings(v))
	}
	return sources.RowsFromTable(header, records)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprint(v)
	}
	return out
}
