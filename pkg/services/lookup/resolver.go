package lookup

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

const (
	PartnerModel     = "res.partner"
	InvoiceLineModel = "combine.invoice.line"

	PartnerGroups = "partner_groups"
	Invoices      = "invoices"
)

type Reader interface {
	Read(ctx context.Context, model string, ids []int64, fields []string) ([]domain.OperationRecord, error)
}

// DistinctRefIDs collects the ids referenced by field across records, sorted.
func DistinctRefIDs(records []domain.OperationRecord, field string) []int64 {
	seen := make(map[int64]struct{})
	for _, rec := range records {
		if id, ok := rec.Get(field).RefID(); ok && id != 0 {
			seen[id] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Resolve builds the partner-group and invoice tables for records with one
// batched read per table. A failed read is logged and leaves its table empty.
func Resolve(ctx context.Context, r Reader, records []domain.OperationRecord) (domain.LookupTables, []domain.LookupSummary) {
	logger := zerolog.Ctx(ctx)

	groups, groupErr := resolve(ctx, r, PartnerModel, DistinctRefIDs(records, "partner_id"), "group", true)
	if groupErr != nil {
		logger.Warn().Err(groupErr).Msg("partner group lookup failed, continuing without customer groups")
	}

	invoices, invErr := resolve(ctx, r, InvoiceLineModel, DistinctRefIDs(records, "invoice_line_id"), "invoice_id", false)
	if invErr != nil {
		logger.Warn().Err(invErr).Msg("invoice lookup failed, continuing without invoice numbers")
	}
	logger.Info().Int("invoices", len(invoices)).Msgf("mapped %d invoices", len(invoices))

	tables := domain.LookupTables{PartnerGroups: groups, Invoices: invoices}
	summaries := []domain.LookupSummary{
		{Name: PartnerGroups, Resolved: len(groups), Degraded: groupErr != nil, Err: groupErr},
		{Name: Invoices, Resolved: len(invoices), Degraded: invErr != nil, Err: invErr},
	}
	return tables, summaries
}

// resolve reads ids from model and maps each record id to the display form of
// valueField. Rows with an empty valueField are dropped unless keepEmpty is set.
func resolve(
	ctx context.Context,
	r Reader,
	model string,
	ids []int64,
	valueField string,
	keepEmpty bool,
) (map[int64]string, error) {
	table := make(map[int64]string)
	if len(ids) == 0 {
		return table, nil
	}

	zerolog.Ctx(ctx).Debug().Str("model", model).Int("ids", len(ids)).Msg("fetching lookup records")

	rows, err := r.Read(ctx, model, ids, []string{"id", valueField})
	if err != nil {
		return map[int64]string{}, fmt.Errorf("failed to read %s: %w", model, err)
	}

	for _, row := range rows {
		id, ok := row.Get("id").Int()
		if !ok {
			continue
		}
		value := row.Get(valueField)
		if !keepEmpty && value.IsZero() {
			continue
		}
		table[id] = value.Display()
	}
	return table, nil
}
