package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/adapters"
	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/services/aggregate"
	"github.com/de-tools/fg-sync/pkg/services/normalize"
	"github.com/de-tools/fg-sync/pkg/services/query"
)

const PackName = "pack"

// Pack reports month-to-date FG packing per day, order and company.
type Pack struct {
	deps Dependencies
}

func NewPack(deps Dependencies) Pipeline {
	return &Pack{deps: deps}
}

func (p *Pack) Name() string {
	return PackName
}

func (p *Pack) Run(ctx context.Context) (*domain.RunReport, error) {
	logger := zerolog.Ctx(ctx).With().Str("pipeline", PackName).Logger()
	ctx = logger.WithContext(ctx)

	cfg := p.deps.Config
	report := newReport(PackName, p.deps)
	window := query.MonthToDate(report.StartedAt)
	report.Period = window.Period()

	records, err := fetch(ctx, p.deps, report, query.PackFilter(cfg.Filter, window), query.PackFields)
	if err != nil {
		return nil, wrapFatal(PackName, err)
	}
	if records == nil {
		return finish(p.deps, report), nil
	}

	rows := make([]domain.PackRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, normalize.Pack(rec, cfg.DateShift))
	}
	grouped := aggregate.Pack(rows)
	logger.Info().
		Int("rows", len(rows)).
		Int("groups", len(grouped)).
		Msg("aggregated packing rows")

	deliver(ctx, p.deps, report, cfg.Pack, domain.PackColumns, adapters.MapPackRowsToValues(grouped))
	return finish(p.deps, report), nil
}
