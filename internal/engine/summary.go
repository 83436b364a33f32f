package engine

import (
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// Recalculate runs every section calculator over the occasion in place and
// returns the freshly derived summary. It is idempotent: repeated calls with
// unchanged inputs produce identical output, so callers re-run it after any
// edit sequence instead of tracking which field changed.
func Recalculate(occ *model.Occasion, startupCash decimal.Decimal) model.FinancialSummary {
	RecalcPaper(occ.Paper)
	return DeriveSummary(occ, startupCash)
}

// DeriveSummary composes the 30-field financial summary from the occasion's
// current section values. Pure function: no caching, no partial sums carried
// across edits. Section totals always reconcile exactly:
//
//	bingoSales     = electronic + miscellaneous + paper
//	totalNetProfit = totalSales - totalPrizesPaid
//	totalOverShort = totalNetDeposit - totalNetProfit
func DeriveSummary(occ *model.Occasion, startupCash decimal.Decimal) model.FinancialSummary {
	pos := RecalcPOS(occ.POSSales)
	pt := RecalcPullTabs(occ.PullTabs)
	games := SettleGames(occ.Games, occ.Progressive, pt.SpecialPrizesPaid)

	bingoDrawer := occ.Drawer(model.DrawerBingo)
	pullTabDrawer := occ.Drawer(model.DrawerPullTab)

	s := model.FinancialSummary{OccasionID: occ.ID}

	// Bingo section
	s.ElectronicSales = pos.ElectronicSales
	s.MiscellaneousSales = pos.MiscellaneousSales
	s.PaperSales = pos.PaperSales
	s.BingoSales = pos.BingoSales
	s.BingoPrizesPaid = games.BingoPrizesPaid
	s.BingoNetProfit = s.BingoSales.Sub(s.BingoPrizesPaid)
	s.BingoDeposit = DrawerTotal(bingoDrawer)
	s.BingoStartupCash = startupCash
	s.BingoNetDeposit = s.BingoDeposit.Sub(startupCash)
	s.BingoOverShort = s.BingoNetDeposit.Sub(s.BingoNetProfit)

	// Pull-tab section
	s.PullTabRegularSales = pt.RegularSales
	s.PullTabSpecialSales = pt.SpecialSales
	s.PullTabSales = pt.RegularSales.Add(pt.SpecialSales)
	s.PullTabRegularPrizesPaid = pt.RegularPrizesPaid
	s.PullTabSpecialPrizesPaid = pt.SpecialPrizesPaid
	s.PullTabPrizes = pt.RegularPrizesPaid.Add(pt.SpecialPrizesPaid)
	s.PullTabPrizesPaidByCheck = pt.PrizesPaidByCheck
	s.PullTabNetProfit = s.PullTabSales.Sub(s.PullTabPrizes)
	s.PullTabNetDeposit = DrawerTotal(pullTabDrawer)
	s.PullTabOverShort = s.PullTabNetDeposit.Sub(s.PullTabNetProfit)

	// Totals section
	s.TotalSales = s.BingoSales.Add(s.PullTabSales)
	s.TotalPrizesPaid = s.BingoPrizesPaid.Add(s.PullTabPrizes)
	s.TotalPrizesPaidByCheck = games.PrizesPaidByCheck.Add(pt.PrizesPaidByCheck)
	s.TotalNetProfit = s.TotalSales.Sub(s.TotalPrizesPaid)
	s.TotalCurrencyDeposit = CurrencyTotal(bingoDrawer).Add(CurrencyTotal(pullTabDrawer))
	s.TotalCoinDeposit = drawerCoins(bingoDrawer).Add(drawerCoins(pullTabDrawer))
	s.TotalCheckDeposit = drawerChecks(bingoDrawer).Add(drawerChecks(pullTabDrawer))
	s.TotalActualDeposit = s.TotalCurrencyDeposit.Add(s.TotalCoinDeposit).Add(s.TotalCheckDeposit)
	s.TotalNetDeposit = s.TotalActualDeposit.Sub(startupCash)
	s.TotalOverShort = s.TotalNetDeposit.Sub(s.TotalNetProfit)

	// Per-player metrics, guarded against an empty house
	if occ.TotalPlayers > 0 {
		players := decimal.NewFromInt(int64(occ.TotalPlayers))
		s.SalesPerPlayer = s.TotalSales.Div(players).Round(2)
		s.ProfitPerPlayer = s.TotalNetDeposit.Div(players).Round(2)
	}

	return s
}
