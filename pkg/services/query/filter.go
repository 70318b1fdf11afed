package query

import (
	"time"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

// DateTimeLayout is the timestamp format the ERP accepts and returns.
const DateTimeLayout = "2006-01-02 15:04:05"

type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	Greater        Operator = ">"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	In             Operator = "in"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    interface{}
}

// Filter is a conjunction of conditions.
type Filter []Condition

// Encode renders the filter in the ERP's domain notation: a list of
// [field, operator, value] triples.
func (f Filter) Encode() []interface{} {
	out := make([]interface{}, 0, len(f))
	for _, c := range f {
		out = append(out, []interface{}{c.Field, string(c.Operator), c.Value})
	}
	return out
}

type Window struct {
	From time.Time
	To   time.Time
}

// MonthToDate returns the window from midnight on the first of now's month
// up to now.
func MonthToDate(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{From: from, To: now}
}

func (w Window) Period() *domain.TimePeriod {
	return &domain.TimePeriod{Start: w.From, End: w.To}
}

func openOperations(cfg domain.FilterConfig) Filter {
	return Filter{
		{Field: "next_operation", Operator: Equal, Value: cfg.NextOperation},
		{Field: "state", Operator: NotEqual, Value: "done"},
		{Field: "state", Operator: NotEqual, Value: "closed"},
	}
}

func PackFilter(cfg domain.FilterConfig, w Window) Filter {
	f := openOperations(cfg)
	return append(f,
		Condition{Field: "action_date", Operator: GreaterOrEqual, Value: w.From.Format(DateTimeLayout)},
		Condition{Field: "action_date", Operator: LessOrEqual, Value: w.To.Format(DateTimeLayout)},
		Condition{Field: "company_id", Operator: In, Value: cfg.CompanyIDs},
	)
}

func StockFilter(cfg domain.FilterConfig) Filter {
	f := openOperations(cfg)
	return append(f,
		Condition{Field: "company_id", Operator: In, Value: cfg.CompanyIDs},
		Condition{Field: "fg_balance", Operator: Greater, Value: 0},
	)
}

var PackFields = []string{
	"action_date",
	"oa_id",
	"company_id",
	"qty",
	"final_price",
}

var StockFields = []string{
	"write_date",
	"action_date",
	"fg_categ_type",
	"product_template_id",
	"oa_id",
	"shade",
	"sizcommon",
	"qty",
	"pack_qty",
	"finish",
	"slidercodesfg",
	"partner_id",
	"final_price",
	"company_id",
	"sales_person",
	"team_id",
	"buyer_name",
	"buyer_group",
	"fg_balance",
	"invoice_line_id",
}
