package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/engine"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

// ReportJobPayload identifies the occasion needing a compliance report.
type ReportJobPayload struct {
	OccasionID string `json:"occasion_id"`
}

// ReportWorker generates compliance report PDFs for finalized occasions
// and hands them to the email queue.
type ReportWorker struct {
	occasions  repository.OccasionRepository
	reports    repository.ReportRepository
	dispatcher *Dispatcher
	cfg        *config.Config
}

func NewReportWorker(
	occasions repository.OccasionRepository,
	reports repository.ReportRepository,
	dispatcher *Dispatcher,
	cfg *config.Config,
) *ReportWorker {
	return &ReportWorker{occasions: occasions, reports: reports, dispatcher: dispatcher, cfg: cfg}
}

func (w *ReportWorker) Process(ctx context.Context, payload json.RawMessage) {
	var job ReportJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("report worker: invalid payload")
		return
	}
	occasionID, err := uuid.Parse(job.OccasionID)
	if err != nil {
		log.Error().Str("occasion_id", job.OccasionID).Msg("report worker: invalid occasion id")
		return
	}

	report, err := w.reports.FindByOccasionID(ctx, occasionID)
	if err != nil {
		report = &model.ComplianceReport{OccasionID: occasionID, Status: model.ReportPending}
		if err := w.reports.Create(ctx, report); err != nil {
			log.Error().Err(err).Str("occasion_id", job.OccasionID).Msg("report worker: create record failed")
			return
		}
	} else if report.Status == model.ReportGenerated {
		log.Info().Str("occasion_id", job.OccasionID).Msg("report worker: already generated, skipping")
		return
	}

	if err := w.generate(ctx, report); err != nil {
		w.markFailed(ctx, report, err)
		return
	}

	report.Status = model.ReportGenerated
	report.LastError = nil
	report.NextRetryAt = nil
	if err := w.reports.Update(ctx, report); err != nil {
		log.Error().Err(err).Str("occasion_id", job.OccasionID).Msg("report worker: update record failed")
		return
	}

	w.enqueueEmail(ctx, report)
}

// Generate builds the PDF and updates the report record. Exported so the
// retry cron can drive the same path.
func (w *ReportWorker) Generate(ctx context.Context, report *model.ComplianceReport) error {
	return w.generate(ctx, report)
}

func (w *ReportWorker) generate(ctx context.Context, report *model.ComplianceReport) error {
	occ, err := w.occasions.FindByID(ctx, report.OccasionID)
	if err != nil {
		return fmt.Errorf("load occasion: %w", err)
	}

	startup := decimal.NewFromInt(int64(w.cfg.StartupCash))
	summary := engine.Recalculate(occ, startup)

	var path string
	err = withRetry(3, func() error {
		var genErr error
		path, genErr = infra.GenerateOccasionReportPDF(occ, summary, w.cfg.PDFStoragePath)
		return genErr
	})
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}

	report.PDFPath = &path
	log.Info().
		Str("occasion_id", report.OccasionID.String()).
		Str("pdf_path", path).
		Msg("compliance report generated")
	return nil
}

func (w *ReportWorker) enqueueEmail(ctx context.Context, report *model.ComplianceReport) {
	if w.cfg.ReportEmail == "" || w.dispatcher == nil || report.PDFPath == nil {
		return
	}
	payload := EmailJobPayload{
		To:      w.cfg.ReportEmail,
		Subject: fmt.Sprintf("Bingo occasion report %s", report.OccasionID),
		Body:    "The attached compliance report was generated automatically after finalization.",
		PDFPath: *report.PDFPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("occasion_id", report.OccasionID.String()).Msg("report worker: email enqueue failed")
		return
	}
	report.EmailedTo = &w.cfg.ReportEmail
	if err := w.reports.Update(ctx, report); err != nil {
		log.Error().Err(err).Str("occasion_id", report.OccasionID.String()).Msg("report worker: update emailed_to failed")
	}
}

func (w *ReportWorker) markFailed(ctx context.Context, report *model.ComplianceReport, cause error) {
	msg := cause.Error()
	report.Status = model.ReportFailed
	report.RetryCount++
	report.LastError = &msg
	next := time.Now().Add(computeRetryBackoff(report.RetryCount))
	report.NextRetryAt = &next
	if err := w.reports.Update(ctx, report); err != nil {
		log.Error().Err(err).Str("occasion_id", report.OccasionID.String()).Msg("report worker: persist failure state failed")
	}
	log.Error().
		Err(cause).
		Str("occasion_id", report.OccasionID.String()).
		Int("retry_count", report.RetryCount).
		Time("next_retry_at", next).
		Msg("compliance report generation failed")
}

// withRetry runs fn with short in-process backoff for transient failures
// (filesystem hiccups). Durable failures fall through to the retry cron.
func withRetry(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(1<<i) * time.Second)
	}
	return err
}
