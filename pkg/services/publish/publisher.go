package publish

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/store/sheets"
)

// Spreadsheet is the worksheet access the publisher needs. *sheets.Client
// implements it.
type Spreadsheet interface {
	Worksheet(ctx context.Context, title string, minColumns int) (*sheets.Worksheet, bool, error)
	Clear(ctx context.Context, rng string) error
	Update(ctx context.Context, rng string, values [][]interface{}, mode domain.ValueInputMode) (int, error)
}

// Opener connects to the destination spreadsheet. It is called once per
// publish so credential problems surface as a failed publish.
type Opener func(ctx context.Context) (Spreadsheet, error)

// SheetsOpener opens the spreadsheet described by cfg with a service account.
func SheetsOpener(cfg domain.SheetsConfig) Opener {
	return func(ctx context.Context) (Spreadsheet, error) {
		c, err := sheets.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

type Request struct {
	Sheet    string
	StartRow int
	Header   []string
	Rows     [][]interface{}
	Columns  int
	Mode     domain.ValueInputMode
}

type Publisher struct {
	open Opener
}

func NewPublisher(open Opener) *Publisher {
	return &Publisher{open: open}
}

// Publish clears the stale block below req.StartRow and writes the header
// (if any) and rows there. It never returns an error: failures are carried
// in the result.
func (p *Publisher) Publish(ctx context.Context, req Request) domain.PublishResult {
	logger := zerolog.Ctx(ctx).With().Str("sheet", req.Sheet).Logger()
	result := domain.PublishResult{Status: domain.PublishSkipped, Sheet: req.Sheet}

	values := make([][]interface{}, 0, len(req.Rows)+1)
	if len(req.Header) > 0 {
		header := make([]interface{}, len(req.Header))
		for i, h := range req.Header {
			header[i] = h
		}
		values = append(values, header)
	}
	values = append(values, req.Rows...)
	if len(values) == 0 || req.Columns <= 0 {
		logger.Info().Msg("nothing to publish")
		return result
	}

	startRow := max(req.StartRow, 1)
	result.Range = SheetRange(req.Sheet, Span(startRow, startRow+len(values)-1, req.Columns))

	fail := func(err error) domain.PublishResult {
		logger.Error().Err(err).Msg("google sheets sync failed")
		result.Status = domain.PublishFailed
		result.Err = err
		return result
	}

	logger.Info().Msg("starting google sheets sync")
	ss, err := p.open(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to open spreadsheet: %w", err))
	}

	ws, _, err := ss.Worksheet(ctx, req.Sheet, req.Columns)
	if err != nil {
		return fail(err)
	}

	result.Status = domain.PublishPublished
	if ws.RowCount >= startRow {
		clearRange := SheetRange(req.Sheet, Span(startRow, ws.RowCount, req.Columns))
		if err := ss.Clear(ctx, clearRange); err != nil {
			logger.Warn().Err(err).Str("range", clearRange).Msg("failed to clear stale rows")
			result.Status = domain.PublishDegraded
			result.Err = err
		}
	}

	logger.Info().Str("range", result.Range).Msgf("updating range %s", result.Range)
	written, err := ss.Update(ctx, SheetRange(req.Sheet, fmt.Sprintf("A%d", startRow)), values, req.Mode)
	if err != nil {
		return fail(err)
	}
	result.Rows = written

	logger.Info().Int("rows", written).Msg("google sheets update complete")
	return result
}
