package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Drawer names. Exactly two drawers exist per occasion.
const (
	DrawerBingo   = "bingo"
	DrawerPullTab = "pullTab"
)

// MoneyCountDrawer is the denomination count of one physical cash drawer.
// Bills are stored as counts per face value; coins and checks as dollar
// amounts. The pull-tab drawer has no check field in the canonical schema;
// Checks is only ever non-zero on it for records brought in by the legacy
// importer.
type MoneyCountDrawer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Drawer     string    `gorm:"type:varchar(10);not null"`

	Hundreds int `gorm:"not null;default:0"`
	Fifties  int `gorm:"not null;default:0"`
	Twenties int `gorm:"not null;default:0"`
	Tens     int `gorm:"not null;default:0"`
	Fives    int `gorm:"not null;default:0"`
	Twos     int `gorm:"not null;default:0"`
	Ones     int `gorm:"not null;default:0"`

	Coins  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Checks decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}
