package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// ── paper inventory ─────────────────────────────────────────────

func TestPaperSold(t *testing.T) {
	cases := []struct {
		name                   string
		start, end, free, want int
	}{
		{"typical count", 100, 40, 10, 50},
		{"nothing sold", 50, 50, 0, 0},
		{"over-counted floors at zero", 10, 15, 2, 0},
		{"all free", 20, 0, 20, 0},
		{"zero inputs", 0, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PaperSold(tc.start, tc.end, tc.free))
			assert.GreaterOrEqual(t, PaperSold(tc.start, tc.end, tc.free), 0)
		})
	}
}

func TestRecalcPaper(t *testing.T) {
	lines := []model.PaperInventoryLine{
		{ProductID: "eb", Start: 100, End: 40, Free: 10},
		{ProductID: "6f", Start: 30, End: 35, Free: 0},
	}
	RecalcPaper(lines)
	assert.Equal(t, 50, lines[0].Sold)
	assert.Equal(t, 0, lines[1].Sold)
}

// ── point of sale ───────────────────────────────────────────────

func TestRecalcPOSCategorySubtotals(t *testing.T) {
	lines := []model.POSSaleLine{
		{ItemID: "small-machine", Price: d("40"), Category: catalog.CategoryElectronic, Quantity: 3},
		{ItemID: "large-machine", Price: d("65"), Category: catalog.CategoryElectronic, Quantity: 2},
		{ItemID: "dauber", Price: d("2"), Category: catalog.CategoryMiscellaneous, Quantity: 5},
		{ItemID: "6-face", Price: d("10"), Category: catalog.CategoryPaper, Quantity: 7},
		{ItemID: "unknown", Price: d("99"), Category: "Mystery", Quantity: 1},
	}
	totals := RecalcPOS(lines)

	assert.True(t, lines[0].Total.Equal(d("120")))
	assert.True(t, totals.ElectronicSales.Equal(d("250")))
	assert.True(t, totals.MiscellaneousSales.Equal(d("10")))
	assert.True(t, totals.PaperSales.Equal(d("70")))
	// unknown category counts toward no subtotal
	assert.True(t, totals.BingoSales.Equal(d("330")))
	sum := totals.ElectronicSales.Add(totals.MiscellaneousSales).Add(totals.PaperSales)
	assert.True(t, totals.BingoSales.Equal(sum))
}

// ── session games ───────────────────────────────────────────────

func TestProgressivePrize(t *testing.T) {
	cases := []struct {
		name string
		prog model.ProgressiveGame
		want decimal.Decimal
	}{
		{"won on the threshold pays jackpot", model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 48, Consolation: d("200")}, d("2000")},
		{"won under the threshold pays jackpot", model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 30, Consolation: d("200")}, d("2000")},
		{"won late pays consolation", model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 55, Consolation: d("200")}, d("200")},
		{"unresolved pays nothing", model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 0, Consolation: d("200")}, decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, ProgressivePrize(tc.prog).Equal(tc.want))
		})
	}
}

func TestSettleGamesProgressive(t *testing.T) {
	prog := model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 48, Consolation: d("200")}
	games := []model.SessionGameResult{{Number: 13, Name: "Progressive Coverall", IsProgressive: true, Winners: 1}}

	SettleGames(games, prog, decimal.Zero)
	assert.True(t, games[0].TotalPayout.Equal(d("2000")))
	assert.True(t, games[0].PrizePerWinner.Equal(d("2000")))
	require.NotNil(t, games[0].ActualBalls)
	assert.Equal(t, 48, *games[0].ActualBalls)

	// late win splits the consolation across winners
	prog.BallsActual = 55
	games[0].Winners = 2
	SettleGames(games, prog, decimal.Zero)
	assert.True(t, games[0].TotalPayout.Equal(d("200")))
	assert.True(t, games[0].PrizePerWinner.Equal(d("100")))
}

func TestSettleGamesIdempotent(t *testing.T) {
	prog := model.ProgressiveGame{Jackpot: d("1500"), BallsNeeded: 50, BallsActual: 44, Consolation: d("150")}
	games := []model.SessionGameResult{{IsProgressive: true, Winners: 3}}

	SettleGames(games, prog, decimal.Zero)
	first, firstPer := games[0].TotalPayout, games[0].PrizePerWinner
	for i := 0; i < 5; i++ {
		SettleGames(games, prog, decimal.Zero)
	}
	assert.True(t, games[0].TotalPayout.Equal(first))
	assert.True(t, games[0].PrizePerWinner.Equal(firstPer))
}

func TestSettleGamesEventGameExcludedFromBingoPrizes(t *testing.T) {
	games := []model.SessionGameResult{
		{Number: 3, Name: "Regular Bingo", Winners: 2, PrizePerWinner: d("100")},
		{Number: 9, Name: "Pot of Gold (Pull-Tab Event)", IsEventGame: true, Winners: 1},
		{Number: 17, Name: "Coverall", Winners: 1, PrizePerWinner: d("200"), CheckPayment: true},
	}
	totals := SettleGames(games, model.ProgressiveGame{}, d("325"))

	assert.True(t, games[1].TotalPayout.Equal(d("325")))
	assert.True(t, games[1].PrizePerWinner.Equal(d("325")))
	// event game payout is a pull-tab prize, not a bingo prize
	assert.True(t, totals.BingoPrizesPaid.Equal(d("400")))
	assert.True(t, totals.PrizesPaidByCheck.Equal(d("200")))
}

func TestSettleGamesEventGameZeroWinners(t *testing.T) {
	games := []model.SessionGameResult{{IsEventGame: true, Winners: 0}}
	SettleGames(games, model.ProgressiveGame{}, d("250"))
	// winners floors at one for the per-winner split
	assert.True(t, games[0].PrizePerWinner.Equal(d("250")))
	assert.True(t, games[0].TotalPayout.Equal(d("250")))
}

func TestSettleGamesNotPlayedZeroesPayout(t *testing.T) {
	games := []model.SessionGameResult{
		{Number: 4, Name: "Letter X", Winners: 2, PrizePerWinner: d("100"), NotPlayed: true},
		{Number: 5, Name: "Six Pack", Winners: 1, PrizePerWinner: d("100")},
	}
	totals := SettleGames(games, model.ProgressiveGame{}, decimal.Zero)
	assert.Equal(t, 0, games[0].Winners)
	assert.True(t, games[0].TotalPayout.IsZero())
	assert.True(t, games[0].NotPlayed)
	assert.True(t, totals.BingoPrizesPaid.Equal(d("100")))
}

// ── pull-tabs ───────────────────────────────────────────────────

func TestPullTabCatalogDefaults(t *testing.T) {
	e := model.PullTabEntry{
		GameName:       "Black Jack 960",
		PricePerTicket: d("1"),
		TicketCount:    960,
		IdealProfit:    dp("361"),
	}
	e.Sales = e.PricePerTicket.Mul(decimal.NewFromInt(int64(e.TicketCount)))
	e.PrizesPaid = DefaultPrizesPaid(e.Sales, e.IdealProfit)

	entries := []model.PullTabEntry{e}
	RecalcPullTabs(entries)

	assert.True(t, entries[0].Sales.Equal(d("960")))
	assert.True(t, entries[0].PrizesPaid.Equal(d("599")))
	assert.True(t, entries[0].NetProfit.Equal(d("361")))
}

func TestPullTabNetProfitNeverClamped(t *testing.T) {
	entries := []model.PullTabEntry{{
		GameName:       "Loser",
		PricePerTicket: d("1"),
		TicketCount:    100,
		PrizesPaid:     d("150"), // manual override above sales
	}}
	totals := RecalcPullTabs(entries)
	assert.True(t, entries[0].NetProfit.Equal(d("-50")))
	assert.True(t, totals.RegularNetProfit.Equal(d("-50")))
}

func TestPullTabRegularSpecialSplit(t *testing.T) {
	entries := []model.PullTabEntry{
		{GameName: "Regular A", PricePerTicket: d("1"), TicketCount: 500, IdealProfit: dp("200"), PrizesPaid: d("300")},
		{GameName: "Custom", PricePerTicket: d("2"), TicketCount: 100, PrizesPaid: d("120"), CheckPayment: true},
		{GameName: "Event", PricePerTicket: d("1"), TicketCount: 400, IdealProfit: dp("150"), PrizesPaid: d("250"), IsSpecialEvent: true},
	}
	totals := RecalcPullTabs(entries)

	assert.True(t, totals.RegularSales.Equal(d("700")))
	assert.True(t, totals.SpecialSales.Equal(d("400")))
	// custom deal has no ideal figure and contributes nothing to the subtotal
	assert.True(t, totals.RegularIdealProfit.Equal(d("200")))
	assert.True(t, totals.RegularPrizesPaid.Equal(d("420")))
	assert.True(t, totals.SpecialPrizesPaid.Equal(d("250")))
	assert.True(t, totals.PrizesPaidByCheck.Equal(d("120")))
}

func TestDefaultPrizesPaidCustomDeal(t *testing.T) {
	assert.True(t, DefaultPrizesPaid(d("200"), nil).IsZero())
}

// ── drawers ─────────────────────────────────────────────────────

func TestDrawerTotals(t *testing.T) {
	drawer := &model.MoneyCountDrawer{
		Drawer:   model.DrawerBingo,
		Hundreds: 1, Twenties: 2, Fives: 1, Ones: 3,
		Coins:  d("4.25"),
		Checks: d("150"),
	}
	assert.True(t, CurrencyTotal(drawer).Equal(d("148")))
	assert.True(t, DrawerTotal(drawer).Equal(d("302.25")))
}

func TestDrawerTotalsNilDrawer(t *testing.T) {
	assert.True(t, CurrencyTotal(nil).IsZero())
	assert.True(t, DrawerTotal(nil).IsZero())
}

// ── summary composition ─────────────────────────────────────────

func sampleOccasion() *model.Occasion {
	return &model.Occasion{
		SessionType:  "6-2",
		TotalPlayers: 100,
		Progressive:  model.ProgressiveGame{Jackpot: d("2000"), BallsNeeded: 48, BallsActual: 48},
		POSSales: []model.POSSaleLine{
			{ItemID: "small-machine", Price: d("40"), Category: catalog.CategoryElectronic, Quantity: 10},
			{ItemID: "dauber", Price: d("2"), Category: catalog.CategoryMiscellaneous, Quantity: 25},
			{ItemID: "6-face", Price: d("10"), Category: catalog.CategoryPaper, Quantity: 60},
		},
		Games: []model.SessionGameResult{
			{Number: 3, Name: "Regular Bingo", Winners: 1, PrizePerWinner: d("100")},
			{Number: 9, Name: "Pot of Gold (Pull-Tab Event)", IsEventGame: true, Winners: 1},
			{Number: 13, Name: "Progressive Coverall", IsProgressive: true, Winners: 1},
			{Number: 17, Name: "Coverall", Winners: 2, PrizePerWinner: d("100"), CheckPayment: true},
		},
		PullTabs: []model.PullTabEntry{
			{GameName: "Regular", PricePerTicket: d("1"), TicketCount: 960, IdealProfit: dp("361"), PrizesPaid: d("599")},
			{GameName: "Event", PricePerTicket: d("1"), TicketCount: 500, IdealProfit: dp("175"), PrizesPaid: d("325"), IsSpecialEvent: true},
		},
		MoneyCounts: []model.MoneyCountDrawer{
			{Drawer: model.DrawerBingo, Hundreds: 12, Twenties: 10, Coins: d("3.50"), Checks: d("200")},
			{Drawer: model.DrawerPullTab, Hundreds: 5, Tens: 3, Coins: d("1.25")},
		},
	}
}

func TestDeriveSummarySections(t *testing.T) {
	occ := sampleOccasion()
	s := DeriveSummary(occ, d("1000"))

	// bingo section
	assert.True(t, s.ElectronicSales.Equal(d("400")))
	assert.True(t, s.MiscellaneousSales.Equal(d("50")))
	assert.True(t, s.PaperSales.Equal(d("600")))
	assert.True(t, s.BingoSales.Equal(d("1050")))
	// regular 100 + coverall 200 + progressive jackpot 2000; event game excluded
	assert.True(t, s.BingoPrizesPaid.Equal(d("2300")))
	assert.True(t, s.BingoNetProfit.Equal(d("-1250")))
	assert.True(t, s.BingoDeposit.Equal(d("1603.50")))
	assert.True(t, s.BingoNetDeposit.Equal(d("603.50")))
	assert.True(t, s.BingoOverShort.Equal(d("1853.50")))

	// pull-tab section
	assert.True(t, s.PullTabRegularSales.Equal(d("960")))
	assert.True(t, s.PullTabSpecialSales.Equal(d("500")))
	assert.True(t, s.PullTabSales.Equal(d("1460")))
	assert.True(t, s.PullTabPrizes.Equal(d("924")))
	assert.True(t, s.PullTabNetProfit.Equal(d("536")))
	assert.True(t, s.PullTabNetDeposit.Equal(d("531.25")))
	assert.True(t, s.PullTabOverShort.Equal(d("-4.75")))

	// totals section
	assert.True(t, s.TotalSales.Equal(d("2510")))
	assert.True(t, s.TotalPrizesPaid.Equal(d("3224")))
	assert.True(t, s.TotalPrizesPaidByCheck.Equal(d("200")))
	assert.True(t, s.TotalNetProfit.Equal(d("-714")))
	assert.True(t, s.TotalCurrencyDeposit.Equal(d("1930")))
	assert.True(t, s.TotalCoinDeposit.Equal(d("4.75")))
	assert.True(t, s.TotalCheckDeposit.Equal(d("200")))
	assert.True(t, s.TotalActualDeposit.Equal(d("2134.75")))
	assert.True(t, s.TotalNetDeposit.Equal(d("1134.75")))
	assert.True(t, s.TotalOverShort.Equal(d("1848.75")))

	// composition invariants
	assert.True(t, s.TotalNetProfit.Equal(s.TotalSales.Sub(s.TotalPrizesPaid)))
	assert.True(t, s.TotalOverShort.Equal(s.TotalNetDeposit.Sub(s.TotalNetProfit)))
	assert.True(t, s.BingoSales.Equal(s.ElectronicSales.Add(s.MiscellaneousSales).Add(s.PaperSales)))
}

func TestDeriveSummaryIdempotent(t *testing.T) {
	occ := sampleOccasion()
	first := DeriveSummary(occ, d("1000"))
	for i := 0; i < 3; i++ {
		again := DeriveSummary(occ, d("1000"))
		assert.Equal(t, first, again)
	}
}

func TestDeriveSummaryZeroPlayers(t *testing.T) {
	occ := sampleOccasion()
	occ.TotalPlayers = 0
	s := DeriveSummary(occ, d("1000"))
	assert.True(t, s.TotalSales.GreaterThan(decimal.Zero))
	assert.True(t, s.SalesPerPlayer.IsZero())
	assert.True(t, s.ProfitPerPlayer.IsZero())
}

func TestDeriveSummaryPerPlayer(t *testing.T) {
	occ := sampleOccasion()
	s := DeriveSummary(occ, d("1000"))
	assert.True(t, s.SalesPerPlayer.Equal(d("25.10")))
	assert.True(t, s.ProfitPerPlayer.Equal(d("11.35")))
}

func TestDeriveSummaryEmptyOccasion(t *testing.T) {
	s := DeriveSummary(&model.Occasion{}, d("1000"))
	assert.True(t, s.TotalSales.IsZero())
	assert.True(t, s.BingoNetDeposit.Equal(d("-1000")))
	assert.True(t, s.TotalNetDeposit.Equal(d("-1000")))
}

func TestRecalculateRefreshesPaper(t *testing.T) {
	occ := sampleOccasion()
	occ.Paper = []model.PaperInventoryLine{{ProductID: "eb", Start: 100, End: 40, Free: 10}}
	Recalculate(occ, d("1000"))
	assert.Equal(t, 50, occ.Paper[0].Sold)
}
