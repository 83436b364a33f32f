package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (partial
// indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Occasion{},
		&model.PaperInventoryLine{},
		&model.POSSaleLine{},
		&model.SessionGameResult{},
		&model.PullTabEntry{},
		&model.MoneyCountDrawer{},
		&model.FinancialSummary{},
		&model.ComplianceReport{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL the model tags cannot express. Each
// statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the report retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_reports_pending_retry') THEN
		    CREATE INDEX idx_reports_pending_retry
		        ON compliance_reports (next_retry_at)
		        WHERE status = 'failed' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// exactly one row per drawer name per occasion
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_money_count_drawer') THEN
		    CREATE UNIQUE INDEX idx_money_count_drawer
		        ON money_count_drawers (occasion_id, drawer);
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
