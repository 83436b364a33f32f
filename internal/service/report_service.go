package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrReportNotReady = errors.New("report PDF not generated yet")
)

// ReportService exposes the compliance report pipeline: status lookups, PDF
// retrieval, and manual re-enqueue of failed reports.
type ReportService interface {
	GetByOccasion(ctx context.Context, occasionID uuid.UUID) (*model.ComplianceReport, error)
	PDFPath(ctx context.Context, reportID uuid.UUID) (string, error)
	Retry(ctx context.Context, reportID uuid.UUID) (*model.ComplianceReport, error)
}

type reportService struct {
	repo     repository.ReportRepository
	enqueuer ReportEnqueuer
}

func NewReportService(repo repository.ReportRepository, enqueuer ReportEnqueuer) ReportService {
	return &reportService{repo: repo, enqueuer: enqueuer}
}

func (s *reportService) GetByOccasion(ctx context.Context, occasionID uuid.UUID) (*model.ComplianceReport, error) {
	report, err := s.repo.FindByOccasionID(ctx, occasionID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *reportService) PDFPath(ctx context.Context, reportID uuid.UUID) (string, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return "", ErrReportNotFound
	}
	if report.Status != model.ReportGenerated || report.PDFPath == nil {
		return "", ErrReportNotReady
	}
	return *report.PDFPath, nil
}

// Retry re-enqueues a failed report, resetting its retry budget so the
// worker picks it up immediately instead of waiting for the backoff window.
func (s *reportService) Retry(ctx context.Context, reportID uuid.UUID) (*model.ComplianceReport, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if report.Status == model.ReportGenerated {
		return report, nil
	}

	report.Status = model.ReportPending
	report.RetryCount = 0
	report.NextRetryAt = nil
	report.LastError = nil
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	if err := s.enqueuer.EnqueueReport(ctx, report.OccasionID); err != nil {
		return nil, err
	}
	return report, nil
}
