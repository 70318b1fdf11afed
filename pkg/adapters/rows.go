package adapters

import "github.com/de-tools/fg-sync/pkg/models/domain"

func MapPackRowToValues(row domain.PackRow) []interface{} {
	return []interface{}{
		row.ActionDate,
		row.OrderRef,
		row.Company,
		row.Qty,
		row.PackValue,
	}
}

func MapStockRowToValues(row domain.StockRow) []interface{} {
	return []interface{}{
		row.LastUpdated,
		row.ActionDate,
		row.Item,
		row.ProductName,
		row.OrderRef,
		row.Shade,
		row.Size,
		row.Qty,
		row.PackQty,
		row.Finish,
		row.SliderCode,
		row.Customer,
		row.FinalPrice,
		row.Company,
		row.Salesperson,
		row.Team,
		row.InvoiceNo,
		row.CustomerGroup,
		row.Buyer,
		row.BuyerGroup,
		row.PackValue,
		row.FGBalance,
		row.FGStockValue,
	}
}

func MapPackRowsToValues(rows []domain.PackRow) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapPackRowToValues(row))
	}
	return out
}

func MapStockRowsToValues(rows []domain.StockRow) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapStockRowToValues(row))
	}
	return out
}
