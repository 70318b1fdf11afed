// Package sheets wraps the Google Sheets v4 API for worksheet level access.
package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

const (
	defaultRows    = 1000
	defaultColumns = 20
)

var Scopes = []string{sheets.SpreadsheetsScope, sheets.DriveScope}

type Worksheet struct {
	ID          int64
	Title       string
	RowCount    int
	ColumnCount int
}

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient authenticates with a service-account key file.
func NewClient(ctx context.Context, cfg domain.SheetsConfig) (*Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	return NewClientWithOptions(ctx, cfg.SpreadsheetID, option.WithHTTPClient(jwt.Client(ctx)))
}

func NewClientWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Worksheet returns the sheet named title, adding it when the spreadsheet
// does not have one yet. The bool result reports whether it was created.
func (c *Client) Worksheet(ctx context.Context, title string, minColumns int) (*Worksheet, bool, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields(googleapi.Field("sheets.properties")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to open spreadsheet %s: %w", c.spreadsheetID, err)
	}

	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return toWorksheet(s.Properties), false, nil
		}
	}

	zerolog.Ctx(ctx).Warn().Str("sheet", title).Msg("worksheet not found, creating it")

	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    defaultRows,
						ColumnCount: int64(max(defaultColumns, minColumns)),
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create worksheet %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return nil, false, fmt.Errorf("failed to create worksheet %q: empty reply", title)
	}
	return toWorksheet(resp.Replies[0].AddSheet.Properties), true, nil
}

// Clear erases the values in an A1 range.
func (c *Client) Clear(ctx context.Context, rng string) error {
	_, err := c.svc.Spreadsheets.Values.BatchClear(c.spreadsheetID, &sheets.BatchClearValuesRequest{
		Ranges: []string{rng},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return nil
}

// Update writes values starting at the top-left cell of rng and returns the
// number of rows written.
func (c *Client) Update(
	ctx context.Context,
	rng string,
	values [][]interface{},
	mode domain.ValueInputMode,
) (int, error) {
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption(string(mode)).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return int(resp.UpdatedRows), nil
}

func toWorksheet(p *sheets.SheetProperties) *Worksheet {
	ws := &Worksheet{ID: p.SheetId, Title: p.Title}
	if p.GridProperties != nil {
		ws.RowCount = int(p.GridProperties.RowCount)
		ws.ColumnCount = int(p.GridProperties.ColumnCount)
	}
	return ws
}
