package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

const dateLayout = "2006-01-02"

func init() {
	// The canonical record stores money as plain JSON numbers. Without this
	// the legacy detector would round-trip quoted strings into numeric fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordFromOccasion renders the stored aggregate in the canonical wire
// shape. The financial block comes from the caller because the summary is
// recomputed on read, never served from the cached row.
func RecordFromOccasion(occ *model.Occasion, summary model.FinancialSummary) OccasionRecord {
	rec := OccasionRecord{
		ID: occ.ID.String(),
		Occasion: OccasionInfo{
			Date:          occ.Date.Format(dateLayout),
			SessionType:   occ.SessionType,
			LionInCharge:  occ.LionInCharge,
			LionPullTabs:  occ.LionPullTabs,
			TotalPlayers:  occ.TotalPlayers,
			BirthdayBOGOs: occ.BirthdayBOGOs,
			Status:        strings.ToLower(occ.Status),
			Progressive: ProgressiveRecord{
				Jackpot:     occ.Progressive.Jackpot,
				BallsNeeded: occ.Progressive.BallsNeeded,
				BallsActual: occ.Progressive.BallsActual,
				Consolation: occ.Progressive.Consolation,
			},
		},
		PaperBingo: map[string]PaperLineRecord{},
		POSSales:   map[string]POSLineRecord{},
		Games:      make([]GameRecord, 0, len(occ.Games)),
		PullTabs:   make([]PullTabRecord, 0, len(occ.PullTabs)),
		Created:    occ.CreatedAt.UTC().Format(time.RFC3339),
		Modified:   occ.UpdatedAt.UTC().Format(time.RFC3339),
	}

	for _, line := range occ.Paper {
		rec.PaperBingo[line.ProductID] = PaperLineRecord{
			Start: line.Start, End: line.End, Free: line.Free, Sold: line.Sold,
		}
	}
	for _, line := range occ.POSSales {
		rec.POSSales[line.ItemID] = POSLineRecord{
			Price: line.Price, Quantity: line.Quantity, Total: line.Total,
		}
	}
	for _, g := range occ.Games {
		rec.Games = append(rec.Games, GameRecord{
			Number:         g.Number,
			Name:           g.Name,
			BasePrize:      g.BasePrize,
			Winners:        g.Winners,
			PrizePerWinner: g.PrizePerWinner,
			TotalPayout:    g.TotalPayout,
			CheckPayment:   g.CheckPayment,
			NotPlayed:      g.NotPlayed,
			IsProgressive:  g.IsProgressive,
			IsEventGame:    g.IsEventGame,
			ActualBalls:    g.ActualBalls,
		})
	}
	for _, pt := range occ.PullTabs {
		rec.PullTabs = append(rec.PullTabs, PullTabRecord{
			GameName:       pt.GameName,
			SerialNumber:   pt.SerialNumber,
			PricePerTicket: pt.PricePerTicket,
			TicketCount:    pt.TicketCount,
			IdealProfit:    pt.IdealProfit,
			Sales:          pt.Sales,
			PrizesPaid:     pt.PrizesPaid,
			NetProfit:      pt.NetProfit,
			IsSpecialEvent: pt.IsSpecialEvent,
			CheckPayment:   pt.CheckPayment,
		})
	}
	rec.MoneyCount = MoneyCountRecord{
		Bingo:   drawerRecord(occ.Drawer(model.DrawerBingo)),
		PullTab: drawerRecord(occ.Drawer(model.DrawerPullTab)),
	}
	fin := FinancialRecordFromSummary(summary)
	rec.Financial = &fin
	return rec
}

// ApplySections replaces the occasion's editable sections from the request.
// Submitted derived values are discarded; the engine recomputes them. POS
// price and category are resolved from the catalog so a tampered payload
// cannot invent prices; unknown item ids keep their submitted values under
// the lenient zero-default policy.
//
// legacyImport keeps checks found in the pull-tab drawer. Historical records
// stored them there; new writes cannot.
func ApplySections(occ *model.Occasion, req *UpdateOccasionRequest, cat *catalog.Catalog, legacyImport bool) {
	if d, err := time.Parse(dateLayout, req.Occasion.Date); err == nil {
		occ.Date = d
	}
	if req.Occasion.SessionType != "" {
		occ.SessionType = req.Occasion.SessionType
	}
	occ.LionInCharge = req.Occasion.LionInCharge
	occ.LionPullTabs = req.Occasion.LionPullTabs
	occ.TotalPlayers = req.Occasion.TotalPlayers
	occ.BirthdayBOGOs = req.Occasion.BirthdayBOGOs
	occ.Progressive = model.ProgressiveGame{
		Jackpot:     req.Occasion.Progressive.Jackpot,
		BallsNeeded: req.Occasion.Progressive.BallsNeeded,
		BallsActual: req.Occasion.Progressive.BallsActual,
		Consolation: req.Occasion.Progressive.Consolation,
	}

	occ.Paper = occ.Paper[:0]
	for id, line := range req.PaperBingo {
		occ.Paper = append(occ.Paper, model.PaperInventoryLine{
			OccasionID: occ.ID,
			ProductID:  id,
			Start:      line.Start,
			End:        line.End,
			Free:       line.Free,
		})
	}

	occ.POSSales = occ.POSSales[:0]
	for id, line := range req.POSSales {
		price, category := line.Price, ""
		if item, ok := cat.POSItem(id); ok {
			price, category = item.Price, item.Category
		}
		occ.POSSales = append(occ.POSSales, model.POSSaleLine{
			OccasionID: occ.ID,
			ItemID:     id,
			Price:      price,
			Category:   category,
			Quantity:   line.Quantity,
		})
	}

	occ.Games = occ.Games[:0]
	for _, g := range req.Games {
		occ.Games = append(occ.Games, model.SessionGameResult{
			OccasionID:     occ.ID,
			Number:         g.Number,
			Name:           g.Name,
			BasePrize:      g.BasePrize,
			Winners:        g.Winners,
			PrizePerWinner: g.PrizePerWinner,
			CheckPayment:   g.CheckPayment,
			NotPlayed:      g.NotPlayed,
			IsProgressive:  g.IsProgressive,
			IsEventGame:    g.IsEventGame,
			ActualBalls:    g.ActualBalls,
		})
	}

	occ.PullTabs = occ.PullTabs[:0]
	for _, pt := range req.PullTabs {
		occ.PullTabs = append(occ.PullTabs, model.PullTabEntry{
			OccasionID:     occ.ID,
			GameName:       pt.GameName,
			SerialNumber:   pt.SerialNumber,
			PricePerTicket: pt.PricePerTicket,
			TicketCount:    pt.TicketCount,
			IdealProfit:    pt.IdealProfit,
			PrizesPaid:     pt.PrizesPaid,
			IsSpecialEvent: pt.IsSpecialEvent,
			CheckPayment:   pt.CheckPayment,
		})
	}

	occ.MoneyCounts = []model.MoneyCountDrawer{
		drawerModel(occ, model.DrawerBingo, req.MoneyCount.Bingo, false),
		drawerModel(occ, model.DrawerPullTab, req.MoneyCount.PullTab, !legacyImport),
	}
}

// FinancialRecordFromSummary maps the derived summary onto its wire names.
func FinancialRecordFromSummary(s model.FinancialSummary) FinancialRecord {
	return FinancialRecord{
		BingoElectronicSales:    s.ElectronicSales,
		BingoMiscellaneousSales: s.MiscellaneousSales,
		BingoPaperSales:         s.PaperSales,
		BingoSales:              s.BingoSales,
		BingoPrizesPaid:         s.BingoPrizesPaid,
		BingoNetProfit:          s.BingoNetProfit,
		BingoDeposit:            s.BingoDeposit,
		BingoStartupCash:        s.BingoStartupCash,
		BingoNetDeposit:         s.BingoNetDeposit,
		BingoOverShort:          s.BingoOverShort,

		PullTabRegularSales:      s.PullTabRegularSales,
		PullTabSpecialSales:      s.PullTabSpecialSales,
		PullTabSales:             s.PullTabSales,
		PullTabRegularPrizesPaid: s.PullTabRegularPrizesPaid,
		PullTabSpecialPrizesPaid: s.PullTabSpecialPrizesPaid,
		PullTabPrizes:            s.PullTabPrizes,
		PullTabPrizesPaidByCheck: s.PullTabPrizesPaidByCheck,
		PullTabNetProfit:         s.PullTabNetProfit,
		PullTabNetDeposit:        s.PullTabNetDeposit,
		PullTabOverShort:         s.PullTabOverShort,

		TotalSales:             s.TotalSales,
		TotalPrizesPaid:        s.TotalPrizesPaid,
		TotalPrizesPaidByCheck: s.TotalPrizesPaidByCheck,
		TotalNetProfit:         s.TotalNetProfit,
		TotalCurrencyDeposit:   s.TotalCurrencyDeposit,
		TotalCoinDeposit:       s.TotalCoinDeposit,
		TotalCheckDeposit:      s.TotalCheckDeposit,
		TotalActualDeposit:     s.TotalActualDeposit,
		TotalNetDeposit:        s.TotalNetDeposit,
		TotalOverShort:         s.TotalOverShort,

		SalesPerPlayer:  s.SalesPerPlayer,
		ProfitPerPlayer: s.ProfitPerPlayer,
	}
}

// UpdateFromRecord converts a full imported record into an update request so
// imports and edits share one code path.
func UpdateFromRecord(rec *OccasionRecord) UpdateOccasionRequest {
	return UpdateOccasionRequest{
		Occasion:   rec.Occasion,
		PaperBingo: rec.PaperBingo,
		POSSales:   rec.POSSales,
		Games:      rec.Games,
		PullTabs:   rec.PullTabs,
		MoneyCount: rec.MoneyCount,
	}
}

func drawerRecord(d *model.MoneyCountDrawer) DrawerRecord {
	if d == nil {
		return DrawerRecord{Coins: decimal.Zero, Checks: decimal.Zero}
	}
	return DrawerRecord{
		Hundreds: d.Hundreds,
		Fifties:  d.Fifties,
		Twenties: d.Twenties,
		Tens:     d.Tens,
		Fives:    d.Fives,
		Twos:     d.Twos,
		Ones:     d.Ones,
		Coins:    d.Coins,
		Checks:   d.Checks,
	}
}

func drawerModel(occ *model.Occasion, name string, rec DrawerRecord, dropChecks bool) model.MoneyCountDrawer {
	d := model.MoneyCountDrawer{
		OccasionID: occ.ID,
		Drawer:     name,
		Hundreds:   rec.Hundreds,
		Fifties:    rec.Fifties,
		Twenties:   rec.Twenties,
		Tens:       rec.Tens,
		Fives:      rec.Fives,
		Twos:       rec.Twos,
		Ones:       rec.Ones,
		Coins:      rec.Coins,
		Checks:     rec.Checks,
	}
	// New writes cannot put checks in the pull-tab drawer; only the legacy
	// importer sets them there.
	if dropChecks {
		d.Checks = decimal.Zero
	}
	return d
}
