package model

import (
	"time"

	"github.com/google/uuid"
)

// Compliance report statuses.
const (
	ReportPending   = "pending"
	ReportGenerated = "generated"
	ReportFailed    = "failed"
)

// ComplianceReport tracks the async PDF generation for a finalized occasion.
// Failed reports are retried with exponential backoff by the retry cron until
// RetryCount exhausts the budget, then parked in the dead letter queue.
type ComplianceReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccasionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"`

	PDFPath     *string
	EmailedTo   *string
	RetryCount  int `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
