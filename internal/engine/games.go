package engine

import (
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// GameTotals are the session-game prize aggregates. BingoPrizesPaid excludes
// the event game: its payout is funded by special-event pull-tabs and would
// otherwise be double counted against pull-tab prizes.
type GameTotals struct {
	BingoPrizesPaid   decimal.Decimal
	PrizesPaidByCheck decimal.Decimal
}

// ProgressivePrize resolves the progressive award from the occasion-level
// progressive state: jackpot when won within the ball threshold, consolation
// when won late, zero while unresolved.
func ProgressivePrize(p model.ProgressiveGame) decimal.Decimal {
	switch {
	case p.BallsActual > 0 && p.BallsActual <= p.BallsNeeded:
		return p.Jackpot
	case p.BallsActual > 0:
		return p.Consolation
	default:
		return decimal.Zero
	}
}

// SettleGames recomputes every game's payout in place and returns the prize
// aggregates.
//
// Regular games: TotalPayout = Winners x PrizePerWinner.
// Progressive game: the prize comes from ProgressivePrize; PrizePerWinner is
// the even split across winners (zero until someone wins).
// Event game: the prize mirrors the special-event pull-tab prizes paid.
// Games marked not played zero their winners and payout, dropping out of the
// totals while keeping the flag for audit.
func SettleGames(games []model.SessionGameResult, prog model.ProgressiveGame, specialEventPrizes decimal.Decimal) GameTotals {
	var t GameTotals
	for i := range games {
		g := &games[i]
		if g.NotPlayed {
			g.Winners = 0
			g.PrizePerWinner = decimal.Zero
			g.TotalPayout = decimal.Zero
			continue
		}
		switch {
		case g.IsProgressive:
			prize := ProgressivePrize(prog)
			g.TotalPayout = prize
			g.PrizePerWinner = perWinner(prize, g.Winners)
			if balls := prog.BallsActual; balls > 0 {
				g.ActualBalls = &balls
			}
		case g.IsEventGame:
			g.TotalPayout = specialEventPrizes
			w := g.Winners
			if w < 1 {
				w = 1
			}
			g.PrizePerWinner = perWinner(specialEventPrizes, w)
		default:
			g.TotalPayout = g.PrizePerWinner.Mul(decimal.NewFromInt(int64(g.Winners)))
		}

		if !g.IsEventGame {
			t.BingoPrizesPaid = t.BingoPrizesPaid.Add(g.TotalPayout)
			if g.CheckPayment {
				t.PrizesPaidByCheck = t.PrizesPaidByCheck.Add(g.TotalPayout)
			}
		}
	}
	return t
}

func perWinner(total decimal.Decimal, winners int) decimal.Decimal {
	if winners <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(winners))).Round(2)
}
