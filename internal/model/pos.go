package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POSSaleLine is one door-sales line. Price and Category come from the
// catalog at entry time and are persisted so old records survive price
// changes. Total is derived: Price * Quantity.
type POSSaleLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ItemID     string          `gorm:"type:varchar(30);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Category   string          `gorm:"type:varchar(20);not null"`
	Quantity   int             `gorm:"not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}
