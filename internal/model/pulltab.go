package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PullTabEntry is one pull-tab deal opened during the occasion.
//
// IdealProfit is nil for manually entered custom deals: "no data" must stay
// distinguishable from "zero profit by design", so it is never defaulted to
// zero. Derived fields: Sales = PricePerTicket * TicketCount,
// NetProfit = Sales - PrizesPaid (may be negative, never clamped).
type PullTabEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;index;not null"`

	GameName     string `gorm:"not null"`
	SerialNumber string

	PricePerTicket decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TicketCount    int              `gorm:"not null;default:0"`
	IdealProfit    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Sales      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrizesPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetProfit  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	IsSpecialEvent bool `gorm:"not null;default:false"`
	CheckPayment   bool `gorm:"not null;default:false"`
}
