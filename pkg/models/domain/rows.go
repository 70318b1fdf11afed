package domain

// PackRow is one line of the packing report. After aggregation ActionDate
// holds the calendar day only.
type PackRow struct {
	ActionDate string
	OrderRef   string
	Company    string
	Qty        float64
	PackValue  float64
}

var PackColumns = []string{"action_date", "oa", "company", "qty", "pack_value"}

// StockRow is one line of the FG stock report. Qty, PackQty, FinalPrice and
// FGBalance hold either the source number or "" when the source was falsy.
type StockRow struct {
	LastUpdated   string
	ActionDate    string
	Item          string
	ProductName   string
	OrderRef      string
	Shade         string
	Size          string
	Qty           interface{}
	PackQty       interface{}
	Finish        string
	SliderCode    string
	Customer      string
	FinalPrice    interface{}
	Company       string
	Salesperson   string
	Team          string
	InvoiceNo     string
	CustomerGroup string
	Buyer         string
	BuyerGroup    string
	PackValue     float64
	FGBalance     interface{}
	FGStockValue  float64
}

var StockColumns = []string{
	"last_updated",
	"action_date",
	"item",
	"product_name",
	"oa",
	"shade",
	"size",
	"qty",
	"pack_qty",
	"finish",
	"slider_code",
	"customer",
	"final_price",
	"company",
	"salesperson",
	"team",
	"invoice_no",
	"customer_group",
	"buyer",
	"buyer Group",
	"pack_value",
	"fg_balance",
	"fg_stock_value",
}
