package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

type ReportRepository interface {
	Create(ctx context.Context, r *model.ComplianceReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceReport, error)
	FindByOccasionID(ctx context.Context, occasionID uuid.UUID) (*model.ComplianceReport, error)
	Update(ctx context.Context, r *model.ComplianceReport) error
	// ListDueForRetry returns failed reports whose backoff window has
	// elapsed, oldest first.
	ListDueForRetry(ctx context.Context, now time.Time, limit int) ([]model.ComplianceReport, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Create(ctx context.Context, rep *model.ComplianceReport) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceReport, error) {
	var rep model.ComplianceReport
	err := r.db.WithContext(ctx).First(&rep, id).Error
	return &rep, err
}

func (r *reportRepo) FindByOccasionID(ctx context.Context, occasionID uuid.UUID) (*model.ComplianceReport, error) {
	var rep model.ComplianceReport
	err := r.db.WithContext(ctx).
		Where("occasion_id = ?", occasionID).
		Order("created_at DESC").
		First(&rep).Error
	return &rep, err
}

func (r *reportRepo) Update(ctx context.Context, rep *model.ComplianceReport) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reportRepo) ListDueForRetry(ctx context.Context, now time.Time, limit int) ([]model.ComplianceReport, error) {
	var reps []model.ComplianceReport
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.ReportFailed, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&reps).Error
	return reps, err
}
