package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Occasion statuses. Stored lowercase; compared case-insensitively on read
// because imported records are not always well-behaved.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusFinalized = "finalized"
)

// Occasion is one sitting of the bingo event. It owns every counted section
// of the record; the financial summary is derived from those sections and
// cached only for display.
type Occasion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date          time.Time `gorm:"type:date;not null;index"`
	SessionType   string    `gorm:"type:varchar(10);not null"`
	LionInCharge  string
	LionPullTabs  string
	TotalPlayers  int    `gorm:"not null;default:0"`
	BirthdayBOGOs int    `gorm:"not null;default:0"`
	Status        string `gorm:"type:varchar(20);not null;default:'draft'"`

	Progressive ProgressiveGame `gorm:"embedded;embeddedPrefix:prog_"`

	Paper       []PaperInventoryLine `gorm:"foreignKey:OccasionID"`
	POSSales    []POSSaleLine        `gorm:"foreignKey:OccasionID"`
	Games       []SessionGameResult  `gorm:"foreignKey:OccasionID"`
	PullTabs    []PullTabEntry       `gorm:"foreignKey:OccasionID"`
	MoneyCounts []MoneyCountDrawer   `gorm:"foreignKey:OccasionID"`

	Summary *FinancialSummary `gorm:"foreignKey:OccasionID"`

	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProgressiveGame is the occasion-level progressive state. The prize paid out
// is derived: jackpot when won within BallsNeeded calls, consolation when won
// late, zero when not yet resolved (BallsActual == 0).
type ProgressiveGame struct {
	Jackpot     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BallsNeeded int             `gorm:"not null;default:0"`
	BallsActual int             `gorm:"not null;default:0"`
	Consolation decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// Drawer returns the money count for the given drawer name, or nil.
func (o *Occasion) Drawer(name string) *MoneyCountDrawer {
	for i := range o.MoneyCounts {
		if o.MoneyCounts[i].Drawer == name {
			return &o.MoneyCounts[i]
		}
	}
	return nil
}
