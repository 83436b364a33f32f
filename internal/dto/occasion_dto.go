// Package dto defines the wire shapes of the API. The occasion record keeps
// the exact field names and nesting of the historical JSON schema: the legacy
// detector sniffs those names on import, so they are load-bearing and must
// not be renamed.
package dto

import "github.com/shopspring/decimal"

// ─── Occasion record (canonical wire shape) ──────────────────────────────────

type OccasionRecord struct {
	ID         string                     `json:"id,omitempty"`
	Occasion   OccasionInfo               `json:"occasion"`
	PaperBingo map[string]PaperLineRecord `json:"paperBingo"`
	POSSales   map[string]POSLineRecord   `json:"posSales"`
	Games      []GameRecord               `json:"games"`
	PullTabs   []PullTabRecord            `json:"pullTabs"`
	MoneyCount MoneyCountRecord           `json:"moneyCount"`
	Financial  *FinancialRecord           `json:"financial,omitempty"`
	Created    string                     `json:"created,omitempty"`
	Modified   string                     `json:"modified,omitempty"`
}

type OccasionInfo struct {
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	SessionType   string            `json:"sessionType" validate:"omitempty,oneof=5-1 6-2 7-3 8-4"`
	LionInCharge  string            `json:"lionInCharge"`
	LionPullTabs  string            `json:"lionPullTabs"`
	TotalPlayers  int               `json:"totalPlayers" validate:"min=0"`
	BirthdayBOGOs int               `json:"birthdayBOGOs" validate:"min=0"`
	Status        string            `json:"status,omitempty"`
	Progressive   ProgressiveRecord `json:"progressive"`
}

type ProgressiveRecord struct {
	Jackpot     decimal.Decimal `json:"jackpot"`
	BallsNeeded int             `json:"ballsNeeded" validate:"min=0"`
	BallsActual int             `json:"ballsActual" validate:"min=0"`
	Consolation decimal.Decimal `json:"consolation"`
}

type PaperLineRecord struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"min=0"`
	Free  int `json:"free" validate:"min=0"`
	Sold  int `json:"sold"`
}

type POSLineRecord struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Total    decimal.Decimal `json:"total"`
}

type GameRecord struct {
	Number         int             `json:"number"`
	Name           string          `json:"name"`
	BasePrize      decimal.Decimal `json:"basePrize"`
	Winners        int             `json:"winners" validate:"min=0"`
	PrizePerWinner decimal.Decimal `json:"prizePerWinner"`
	TotalPayout    decimal.Decimal `json:"totalPayout"`
	CheckPayment   bool            `json:"checkPayment"`
	NotPlayed      bool            `json:"notPlayed,omitempty"`
	IsProgressive  bool            `json:"isProgressive,omitempty"`
	IsEventGame    bool            `json:"isEventGame,omitempty"`
	ActualBalls    *int            `json:"actualBalls,omitempty"`
}

type PullTabRecord struct {
	GameName       string          `json:"gameName"`
	SerialNumber   string          `json:"serialNumber"`
	PricePerTicket decimal.Decimal `json:"pricePerTicket"`
	TicketCount    int             `json:"ticketCount" validate:"min=0"`
	// IdealProfit is null for manually entered custom deals; "no data" is
	// distinct from a designed profit of zero.
	IdealProfit    *decimal.Decimal `json:"idealProfit"`
	Sales          decimal.Decimal  `json:"sales"`
	PrizesPaid     decimal.Decimal  `json:"prizesPaid"`
	NetProfit      decimal.Decimal  `json:"netProfit"`
	IsSpecialEvent bool             `json:"isSpecialEvent"`
	CheckPayment   bool             `json:"checkPayment"`
}

type MoneyCountRecord struct {
	Bingo   DrawerRecord `json:"bingo"`
	PullTab DrawerRecord `json:"pullTab"`
}

// DrawerRecord stores bill counts per face value and dollar amounts for
// coins and checks. The pull-tab drawer's checks only appear on records
// brought in by the legacy importer.
type DrawerRecord struct {
	Hundreds int             `json:"100" validate:"min=0"`
	Fifties  int             `json:"50" validate:"min=0"`
	Twenties int             `json:"20" validate:"min=0"`
	Tens     int             `json:"10" validate:"min=0"`
	Fives    int             `json:"5" validate:"min=0"`
	Twos     int             `json:"2" validate:"min=0"`
	Ones     int             `json:"1" validate:"min=0"`
	Coins    decimal.Decimal `json:"coins"`
	Checks   decimal.Decimal `json:"checks"`
}

// FinancialRecord is the derived summary in its historical wire shape,
// lowercase-t "pulltabNetProfit" included.
type FinancialRecord struct {
	BingoElectronicSales    decimal.Decimal `json:"bingoElectronicSales"`
	BingoMiscellaneousSales decimal.Decimal `json:"bingoMiscellaneousSales"`
	BingoPaperSales         decimal.Decimal `json:"bingoPaperSales"`
	BingoSales              decimal.Decimal `json:"bingoSales"`
	BingoPrizesPaid         decimal.Decimal `json:"bingoPrizesPaid"`
	BingoNetProfit          decimal.Decimal `json:"bingoNetProfit"`
	BingoDeposit            decimal.Decimal `json:"bingoDeposit"`
	BingoStartupCash        decimal.Decimal `json:"bingoStartupCash"`
	BingoNetDeposit         decimal.Decimal `json:"bingoNetDeposit"`
	BingoOverShort          decimal.Decimal `json:"bingoOverShort"`

	PullTabRegularSales      decimal.Decimal `json:"pullTabRegularSales"`
	PullTabSpecialSales      decimal.Decimal `json:"pullTabSpecialSales"`
	PullTabSales             decimal.Decimal `json:"pullTabSales"`
	PullTabRegularPrizesPaid decimal.Decimal `json:"pullTabRegularPrizesPaid"`
	PullTabSpecialPrizesPaid decimal.Decimal `json:"pullTabSpecialPrizesPaid"`
	PullTabPrizes            decimal.Decimal `json:"pullTabPrizes"`
	PullTabPrizesPaidByCheck decimal.Decimal `json:"pullTabPrizesPaidByCheck"`
	PullTabNetProfit         decimal.Decimal `json:"pulltabNetProfit"`
	PullTabNetDeposit        decimal.Decimal `json:"pullTabNetDeposit"`
	PullTabOverShort         decimal.Decimal `json:"pullTabOverShort"`

	TotalSales             decimal.Decimal `json:"totalSales"`
	TotalPrizesPaid        decimal.Decimal `json:"totalPrizesPaid"`
	TotalPrizesPaidByCheck decimal.Decimal `json:"totalPrizesPaidByCheck"`
	TotalNetProfit         decimal.Decimal `json:"totalNetProfit"`
	TotalCurrencyDeposit   decimal.Decimal `json:"totalCurrencyDeposit"`
	TotalCoinDeposit       decimal.Decimal `json:"totalCoinDeposit"`
	TotalCheckDeposit      decimal.Decimal `json:"totalCheckDeposit"`
	TotalActualDeposit     decimal.Decimal `json:"totalActualDeposit"`
	TotalNetDeposit        decimal.Decimal `json:"totalNetDeposit"`
	TotalOverShort         decimal.Decimal `json:"totalOverShort"`

	SalesPerPlayer  decimal.Decimal `json:"salesPerPlayer"`
	ProfitPerPlayer decimal.Decimal `json:"profitPerPlayer"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateOccasionRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	SessionType  string `json:"sessionType" validate:"required,oneof=5-1 6-2 7-3 8-4"`
	LionInCharge string `json:"lionInCharge"`
	LionPullTabs string `json:"lionPullTabs"`
}

// UpdateOccasionRequest replaces the editable sections of a draft or
// submitted occasion. Derived fields in the payload (sold, totals, the
// financial block) are ignored and recomputed server-side.
type UpdateOccasionRequest struct {
	Occasion   OccasionInfo               `json:"occasion" validate:"required"`
	PaperBingo map[string]PaperLineRecord `json:"paperBingo" validate:"dive"`
	POSSales   map[string]POSLineRecord   `json:"posSales" validate:"dive"`
	Games      []GameRecord               `json:"games" validate:"dive"`
	PullTabs   []PullTabRecord            `json:"pullTabs" validate:"dive"`
	MoneyCount MoneyCountRecord           `json:"moneyCount"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OccasionListItem struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	SessionType    string          `json:"sessionType"`
	Status         string          `json:"status"`
	TotalPlayers   int             `json:"totalPlayers"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalNetProfit decimal.Decimal `json:"totalNetProfit"`
}

type OccasionListResponse struct {
	Occasions []OccasionListItem `json:"occasions"`
	Total     int64              `json:"total"`
}
