package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialSummary is wholly derived from the other occasion sections and
// recomputed on every read; the stored row is a display cache, never an
// input. Thirty fields in three sections plus two per-player metrics.
type FinancialSummary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	// Bingo section
	ElectronicSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MiscellaneousSales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaperSales         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoSales         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoPrizesPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoNetProfit     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoDeposit       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoStartupCash   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoNetDeposit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BingoOverShort     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Pull-tab section
	PullTabRegularSales      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabSpecialSales      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabSales             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabRegularPrizesPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabSpecialPrizesPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabPrizes            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabPrizesPaidByCheck decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabNetProfit         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabNetDeposit        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PullTabOverShort         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Totals section
	TotalSales             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrizesPaid        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrizesPaidByCheck decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalNetProfit         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCurrencyDeposit   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCoinDeposit       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCheckDeposit      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalActualDeposit     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalNetDeposit        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalOverShort         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Per-player metrics, zero when no players were recorded
	SalesPerPlayer  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProfitPerPlayer decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}
