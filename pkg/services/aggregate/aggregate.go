package aggregate

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

const dayLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	dayLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Day truncates a normalized timestamp to its calendar day. Values that do
// not parse as a date yield "".
func Day(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dayLayout)
		}
	}
	return ""
}

type packKey struct {
	day      string
	orderRef string
	company  string
}

type packTerms struct {
	qty   []float64
	value []float64
}

// Pack merges rows sharing a (day, order reference, company) key, summing
// quantity and pack value. Rows with missing keys are grouped under "". The
// result is ordered by day then order reference, with company breaking ties.
func Pack(rows []domain.PackRow) []domain.PackRow {
	groups := make(map[packKey]*packTerms, len(rows))
	for _, row := range rows {
		key := packKey{day: Day(row.ActionDate), orderRef: row.OrderRef, company: row.Company}
		g, ok := groups[key]
		if !ok {
			g = &packTerms{}
			groups[key] = g
		}
		g.qty = append(g.qty, row.Qty)
		g.value = append(g.value, row.PackValue)
	}

	out := make([]domain.PackRow, 0, len(groups))
	for key, g := range groups {
		out = append(out, domain.PackRow{
			ActionDate: key.day,
			OrderRef:   key.orderRef,
			Company:    key.company,
			Qty:        sum(g.qty),
			PackValue:  sum(g.value),
		})
	}
	slices.SortFunc(out, func(a, b domain.PackRow) int {
		return cmp.Or(
			cmp.Compare(a.ActionDate, b.ActionDate),
			cmp.Compare(a.OrderRef, b.OrderRef),
			cmp.Compare(a.Company, b.Company),
		)
	})
	return out
}

// sum adds terms in ascending order so the total does not depend on the
// order the rows arrived in.
func sum(terms []float64) float64 {
	slices.Sort(terms)
	var total float64
	for _, t := range terms {
		total += t
	}
	return total
}
