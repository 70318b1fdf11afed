package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/adapters"
	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/services/lookup"
	"github.com/de-tools/fg-sync/pkg/services/normalize"
	"github.com/de-tools/fg-sync/pkg/services/query"
)

const StockName = "stock"

// Stock reports every open FG packing operation with a positive balance,
// enriched with customer group and invoice number.
type Stock struct {
	deps Dependencies
}

func NewStock(deps Dependencies) Pipeline {
	return &Stock{deps: deps}
}

func (s *Stock) Name() string {
	return StockName
}

func (s *Stock) Run(ctx context.Context) (*domain.RunReport, error) {
	logger := zerolog.Ctx(ctx).With().Str("pipeline", StockName).Logger()
	ctx = logger.WithContext(ctx)

	cfg := s.deps.Config
	report := newReport(StockName, s.deps)

	records, err := fetch(ctx, s.deps, report, query.StockFilter(cfg.Filter), query.StockFields)
	if err != nil {
		return nil, wrapFatal(StockName, err)
	}
	if records == nil {
		return finish(s.deps, report), nil
	}

	tables, summaries := lookup.Resolve(ctx, s.deps.Source, records)
	report.Lookups = summaries

	rows := make([]domain.StockRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, normalize.Stock(rec, tables, cfg.DateShift))
	}

	deliver(ctx, s.deps, report, cfg.Stock, domain.StockColumns, adapters.MapStockRowsToValues(rows))
	return finish(s.deps, report), nil
}
