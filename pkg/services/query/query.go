package query

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

const OperationModel = "operation.details"

type Searcher interface {
	SearchRead(ctx context.Context, model string, filter []interface{}, fields []string) ([]domain.OperationRecord, error)
}

// Fetch runs the single primary query of a pipeline.
func Fetch(ctx context.Context, src Searcher, filter Filter, fields []string) ([]domain.OperationRecord, error) {
	records, err := src.SearchRead(ctx, OperationModel, filter.Encode(), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", OperationModel, err)
	}

	zerolog.Ctx(ctx).Info().
		Int("records", len(records)).
		Msgf("%d records fetched from %s", len(records), OperationModel)
	return records, nil
}
