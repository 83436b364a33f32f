package engine

import (
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// POSTotals are the door-sales category subtotals.
// BingoSales is always the exact sum of the three categories.
type POSTotals struct {
	ElectronicSales    decimal.Decimal
	MiscellaneousSales decimal.Decimal
	PaperSales         decimal.Decimal
	BingoSales         decimal.Decimal
}

// RecalcPOS refreshes each line total (price x quantity) and returns the
// category subtotals. Lines with an unknown category contribute to no
// subtotal, matching the lenient zero-default policy.
func RecalcPOS(lines []model.POSSaleLine) POSTotals {
	var t POSTotals
	for i := range lines {
		line := &lines[i]
		line.Total = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		switch line.Category {
		case catalog.CategoryElectronic:
			t.ElectronicSales = t.ElectronicSales.Add(line.Total)
		case catalog.CategoryMiscellaneous:
			t.MiscellaneousSales = t.MiscellaneousSales.Add(line.Total)
		case catalog.CategoryPaper:
			t.PaperSales = t.PaperSales.Add(line.Total)
		}
	}
	t.BingoSales = t.ElectronicSales.Add(t.MiscellaneousSales).Add(t.PaperSales)
	return t
}
