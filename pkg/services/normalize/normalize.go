// Package normalize flattens raw ERP records into report rows.
package normalize

import (
	"time"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// DefaultDateShift is added to every action date. It is six hours even though
// the report consumers read the column as IST (+05:30).
const DefaultDateShift = 6 * time.Hour

// FormatDate shifts a "YYYY-MM-DD HH:MM:SS" (or date-only) value forward by
// shift and renders it as "YYYY-MM-DD HH:MM:SS". Strings in any other format
// are returned unchanged.
func FormatDate(v domain.Value, shift time.Duration) string {
	if v.IsZero() {
		return ""
	}
	s, ok := v.Raw().(string)
	if !ok {
		return v.Display()
	}
	for _, layout := range []string{DateTimeLayout, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Add(shift).Format(DateTimeLayout)
		}
	}
	return s
}

// NumberOrEmpty returns the raw number, or "" when the value is falsy.
func NumberOrEmpty(v domain.Value) interface{} {
	if v.IsZero() {
		return ""
	}
	if v.Kind() == domain.KindReference {
		return v.Display()
	}
	return v.Raw()
}

// Pack maps an operation record onto a packing row. PackValue is
// final_price × qty with missing operands counted as zero.
func Pack(rec domain.OperationRecord, shift time.Duration) domain.PackRow {
	qty := rec.Get("qty").Float()
	return domain.PackRow{
		ActionDate: FormatDate(rec.Get("action_date"), shift),
		OrderRef:   rec.Get("oa_id").Display(),
		Company:    rec.Get("company_id").Display(),
		Qty:        qty,
		PackValue:  rec.Get("final_price").Float() * qty,
	}
}

// Stock maps an operation record onto an FG stock row, resolving customer
// group and invoice number through tables.
func Stock(rec domain.OperationRecord, tables domain.LookupTables, shift time.Duration) domain.StockRow {
	price := rec.Get("final_price").Float()

	var customerGroup string
	if id, ok := rec.Get("partner_id").RefID(); ok {
		customerGroup = tables.PartnerGroups[id]
	}
	var invoiceNo string
	if id, ok := rec.Get("invoice_line_id").RefID(); ok {
		invoiceNo = tables.Invoices[id]
	}

	return domain.StockRow{
		LastUpdated:   rec.Get("write_date").Display(),
		ActionDate:    FormatDate(rec.Get("action_date"), shift),
		Item:          rec.Get("fg_categ_type").Display(),
		ProductName:   rec.Get("product_template_id").Display(),
		OrderRef:      rec.Get("oa_id").Display(),
		Shade:         rec.Get("shade").Display(),
		Size:          rec.Get("sizcommon").Display(),
		Qty:           NumberOrEmpty(rec.Get("qty")),
		PackQty:       NumberOrEmpty(rec.Get("pack_qty")),
		Finish:        rec.Get("finish").Display(),
		SliderCode:    rec.Get("slidercodesfg").Display(),
		Customer:      rec.Get("partner_id").Display(),
		FinalPrice:    NumberOrEmpty(rec.Get("final_price")),
		Company:       rec.Get("company_id").Display(),
		Salesperson:   rec.Get("sales_person").Display(),
		Team:          rec.Get("team_id").Display(),
		InvoiceNo:     invoiceNo,
		CustomerGroup: customerGroup,
		Buyer:         rec.Get("buyer_name").Display(),
		BuyerGroup:    rec.Get("buyer_group").Display(),
		PackValue:     price * rec.Get("qty").Float(),
		FGBalance:     NumberOrEmpty(rec.Get("fg_balance")),
		FGStockValue:  rec.Get("fg_balance").Float() * price,
	}
}
