package model

import "github.com/google/uuid"

// PaperInventoryLine is the physical count of one paper product type.
// Sold is derived: max(0, Start - End - Free). The count is audit data and
// does not by itself drive revenue (door sales do).
type PaperInventoryLine struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID  string    `gorm:"type:varchar(20);not null"`
	Start      int       `gorm:"not null;default:0"`
	End        int       `gorm:"not null;default:0"`
	Free       int       `gorm:"not null;default:0"`
	Sold       int       `gorm:"not null;default:0"`
}
