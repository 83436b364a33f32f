package engine

import (
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// PullTabTotals split every deal by its special-event flag. IdealProfit only
// accumulates over regular catalog deals; custom deals carry no ideal figure
// and contribute nothing to it.
type PullTabTotals struct {
	RegularSales       decimal.Decimal
	SpecialSales       decimal.Decimal
	RegularIdealProfit decimal.Decimal
	RegularPrizesPaid  decimal.Decimal
	SpecialPrizesPaid  decimal.Decimal
	RegularNetProfit   decimal.Decimal
	SpecialNetProfit   decimal.Decimal
	PrizesPaidByCheck  decimal.Decimal
}

// DefaultPrizesPaid is the prize pre-fill for a catalog-selected deal:
// everything the deal takes in beyond its designed profit goes back out as
// prizes. Custom deals have no ideal figure and get no default.
func DefaultPrizesPaid(sales decimal.Decimal, idealProfit *decimal.Decimal) decimal.Decimal {
	if idealProfit == nil {
		return decimal.Zero
	}
	return sales.Sub(*idealProfit)
}

// RecalcPullTabs refreshes sales and net profit on every entry and returns
// the regular/special aggregates. Net profit is never clamped; a deal whose
// recorded prizes exceed its sales legitimately nets negative.
func RecalcPullTabs(entries []model.PullTabEntry) PullTabTotals {
	var t PullTabTotals
	for i := range entries {
		e := &entries[i]
		e.Sales = e.PricePerTicket.Mul(decimal.NewFromInt(int64(e.TicketCount)))
		e.NetProfit = e.Sales.Sub(e.PrizesPaid)

		if e.IsSpecialEvent {
			t.SpecialSales = t.SpecialSales.Add(e.Sales)
			t.SpecialPrizesPaid = t.SpecialPrizesPaid.Add(e.PrizesPaid)
			t.SpecialNetProfit = t.SpecialNetProfit.Add(e.NetProfit)
		} else {
			t.RegularSales = t.RegularSales.Add(e.Sales)
			t.RegularPrizesPaid = t.RegularPrizesPaid.Add(e.PrizesPaid)
			t.RegularNetProfit = t.RegularNetProfit.Add(e.NetProfit)
			if e.IdealProfit != nil {
				t.RegularIdealProfit = t.RegularIdealProfit.Add(*e.IdealProfit)
			}
		}
		if e.CheckPayment {
			t.PrizesPaidByCheck = t.PrizesPaidByCheck.Add(e.PrizesPaid)
		}
	}
	return t
}
