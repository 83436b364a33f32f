package engine

import (
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

var faceValues = []struct {
	face  int64
	count func(*model.MoneyCountDrawer) int
}{
	{100, func(d *model.MoneyCountDrawer) int { return d.Hundreds }},
	{50, func(d *model.MoneyCountDrawer) int { return d.Fifties }},
	{20, func(d *model.MoneyCountDrawer) int { return d.Twenties }},
	{10, func(d *model.MoneyCountDrawer) int { return d.Tens }},
	{5, func(d *model.MoneyCountDrawer) int { return d.Fives }},
	{2, func(d *model.MoneyCountDrawer) int { return d.Twos }},
	{1, func(d *model.MoneyCountDrawer) int { return d.Ones }},
}

// CurrencyTotal is the bill value of a drawer: sum of face value x count.
func CurrencyTotal(d *model.MoneyCountDrawer) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, fv := range faceValues {
		total = total.Add(decimal.NewFromInt(fv.face).Mul(decimal.NewFromInt(int64(fv.count(d)))))
	}
	return total
}

// DrawerTotal is bills plus coins plus checks. The pull-tab drawer's checks
// are zero except on legacy-imported records, so adding them unconditionally
// is both correct and bug-compatible with historical data.
func DrawerTotal(d *model.MoneyCountDrawer) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return CurrencyTotal(d).Add(d.Coins).Add(d.Checks)
}

// drawerCoins and drawerChecks tolerate a missing drawer as zero.
func drawerCoins(d *model.MoneyCountDrawer) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Coins
}

func drawerChecks(d *model.MoneyCountDrawer) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Checks
}
