package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

func TestMapPackRowsToValues(t *testing.T) {
	values := MapPackRowsToValues([]domain.PackRow{
		{ActionDate: "2025-03-10", OrderRef: "OA/1", Company: "Main Co", Qty: 10, PackValue: 100},
	})

	assert.Equal(t, [][]interface{}{{"2025-03-10", "OA/1", "Main Co", 10.0, 100.0}}, values)
	assert.Len(t, values[0], len(domain.PackColumns))
}

func TestMapStockRowToValues_ColumnOrder(t *testing.T) {
	row := domain.StockRow{
		LastUpdated:   "2025-03-11 09:15:00",
		ActionDate:    "2025-03-10 06:00:00",
		Qty:           4.0,
		PackQty:       "",
		FinalPrice:    2.5,
		InvoiceNo:     "INV/1",
		CustomerGroup: "Retail",
		PackValue:     10,
		FGBalance:     3.0,
		FGStockValue:  7.5,
	}

	values := MapStockRowToValues(row)

	assert.Len(t, values, len(domain.StockColumns))
	byColumn := make(map[string]interface{}, len(values))
	for i, name := range domain.StockColumns {
		byColumn[name] = values[i]
	}
	assert.Equal(t, "2025-03-11 09:15:00", byColumn["last_updated"])
	assert.Equal(t, 4.0, byColumn["qty"])
	assert.Equal(t, "", byColumn["pack_qty"])
	assert.Equal(t, "INV/1", byColumn["invoice_no"])
	assert.Equal(t, "Retail", byColumn["customer_group"])
	assert.Equal(t, 10.0, byColumn["pack_value"])
	assert.Equal(t, 7.5, byColumn["fg_stock_value"])
}
