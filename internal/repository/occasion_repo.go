package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

type OccasionRepository interface {
	Create(ctx context.Context, o *model.Occasion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Occasion, error)
	List(ctx context.Context, limit, offset int) ([]model.Occasion, int64, error)
	// Update replaces the whole aggregate: header row plus every child
	// section, in one transaction.
	Update(ctx context.Context, o *model.Occasion) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SaveSummary(ctx context.Context, s *model.FinancialSummary) error
}

type occasionRepo struct{ db *gorm.DB }

func NewOccasionRepository(db *gorm.DB) OccasionRepository { return &occasionRepo{db: db} }

func (r *occasionRepo) Create(ctx context.Context, o *model.Occasion) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *occasionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Occasion, error) {
	var o model.Occasion
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Preload("POSSales").
		Preload("Games", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		Preload("PullTabs").
		Preload("MoneyCounts").
		Preload("Summary").
		First(&o, id).Error
	return &o, err
}

func (r *occasionRepo) List(ctx context.Context, limit, offset int) ([]model.Occasion, int64, error) {
	var occs []model.Occasion
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Occasion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Summary").
		Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&occs).Error
	return occs, total, err
}

func (r *occasionRepo) Update(ctx context.Context, o *model.Occasion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Child sections are replaced wholesale: the record is the unit of
		// exchange, not individual lines.
		for _, child := range []interface{}{
			&model.PaperInventoryLine{}, &model.POSSaleLine{},
			&model.SessionGameResult{}, &model.PullTabEntry{},
			&model.MoneyCountDrawer{},
		} {
			if err := tx.Where("occasion_id = ?", o.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
	})
}

func (r *occasionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Occasion{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *occasionRepo) SaveSummary(ctx context.Context, s *model.FinancialSummary) error {
	return r.db.WithContext(ctx).
		Where("occasion_id = ?", s.OccasionID).
		Assign(s).
		FirstOrCreate(&model.FinancialSummary{}).Error
}
