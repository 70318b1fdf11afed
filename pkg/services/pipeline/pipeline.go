package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/services/lookup"
	"github.com/de-tools/fg-sync/pkg/services/publish"
	"github.com/de-tools/fg-sync/pkg/services/query"
)

// Source is the ERP side of a pipeline.
type Source interface {
	Authenticate(ctx context.Context) error
	query.Searcher
	lookup.Reader
}

type Publisher interface {
	Publish(ctx context.Context, req publish.Request) domain.PublishResult
}

type Exporter interface {
	Path() string
	Export(ctx context.Context, sheet string, header []string, rows [][]interface{}) error
}

// ExporterFactory returns the local exporter for a pipeline, or nil when no
// local export is wanted.
type ExporterFactory func(pipeline string, at time.Time) Exporter

// Dependencies are shared by all pipelines. A nil Publisher skips the
// spreadsheet stage.
type Dependencies struct {
	Config    domain.Config
	Source    Source
	Publisher Publisher
	Exporter  ExporterFactory
	Now       func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

type Pipeline interface {
	Name() string
	// Run executes the pipeline once. Only fatal conditions are returned as
	// errors; an empty result or failed publish is reported in the RunReport.
	Run(ctx context.Context) (*domain.RunReport, error)
}

// fetch authenticates and runs the primary query. A nil slice with a nil
// error means the query matched nothing.
func fetch(
	ctx context.Context,
	deps Dependencies,
	report *domain.RunReport,
	filter query.Filter,
	fields []string,
) ([]domain.OperationRecord, error) {
	if err := deps.Source.Authenticate(ctx); err != nil {
		return nil, err
	}

	records, err := query.Fetch(ctx, deps.Source, filter, fields)
	if err != nil {
		return nil, err
	}
	report.Fetched = len(records)
	if len(records) == 0 {
		zerolog.Ctx(ctx).Info().Msg("no records found for the given filters")
		report.Status = domain.RunNoRecords
		return nil, nil
	}
	return records, nil
}

// deliver runs the export and publish stages for the final row set.
func deliver(
	ctx context.Context,
	deps Dependencies,
	report *domain.RunReport,
	cfg domain.PipelineConfig,
	columns []string,
	rows [][]interface{},
) {
	logger := zerolog.Ctx(ctx)
	report.Rows = len(rows)

	if deps.Exporter != nil {
		if exp := deps.Exporter(report.Pipeline, report.StartedAt); exp != nil {
			result := &domain.ExportResult{Path: exp.Path(), Rows: len(rows)}
			if err := exp.Export(ctx, cfg.SheetName, columns, rows); err != nil {
				logger.Error().Err(err).Msg("local export failed")
				result.Err = err
			}
			report.Export = result
		}
	}

	if deps.Publisher == nil {
		logger.Info().Msg("publishing disabled, skipping google sheets sync")
		report.Publish = domain.PublishResult{Status: domain.PublishSkipped, Sheet: cfg.SheetName}
		return
	}

	req := publish.Request{
		Sheet:    cfg.SheetName,
		StartRow: cfg.StartRow,
		Rows:     rows,
		Columns:  len(columns),
		Mode:     cfg.ValueInput,
	}
	if cfg.Header {
		req.Header = columns
	}
	report.Publish = deps.Publisher.Publish(ctx, req)
}

func newReport(name string, deps Dependencies) *domain.RunReport {
	return &domain.RunReport{
		Pipeline:  name,
		Status:    domain.RunCompleted,
		StartedAt: deps.now(),
		Publish:   domain.PublishResult{Status: domain.PublishSkipped},
	}
}

func finish(deps Dependencies, report *domain.RunReport) *domain.RunReport {
	report.FinishedAt = deps.now()
	return report
}

func wrapFatal(name string, err error) error {
	return fmt.Errorf("%s pipeline: %w", name, err)
}
