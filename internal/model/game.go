package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionGameResult is one line of the session's game program with its
// settled outcome. TotalPayout is derived: Winners * PrizePerWinner for
// regular games; the progressive and event games follow their own rules.
//
// The event game's payout mirrors the special-event pull-tab prizes and is
// excluded from bingo prize totals even though it sits in the game table.
type SessionGameResult struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Number     int       `gorm:"not null"`
	Name       string    `gorm:"not null"`

	BasePrize      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Winners        int             `gorm:"not null;default:0"`
	PrizePerWinner decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPayout    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CheckPayment   bool            `gorm:"not null;default:false"`

	IsProgressive bool `gorm:"not null;default:false"`
	IsEventGame   bool `gorm:"not null;default:false"`

	// NotPlayed marks a game skipped during the session. Its winners and
	// payout are zeroed so the game drops out of prize totals; the flag
	// itself stays on the record for audit.
	NotPlayed bool `gorm:"not null;default:false"`

	// ActualBalls applies to the progressive game only.
	ActualBalls *int
}
