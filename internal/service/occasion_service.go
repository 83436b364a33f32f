package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/dto"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/engine"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/legacy"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

var (
	ErrOccasionFinalized = errors.New("occasion is finalized and cannot be edited")
	ErrBadTransition     = errors.New("invalid status transition")
)

// ProgramSource supplies the session game program. The embedded catalog backs
// it when the remote program service is unreachable.
type ProgramSource interface {
	Program(ctx context.Context, sessionType string) ([]catalog.SessionGame, error)
}

// ReportEnqueuer hands finalized occasions to the async report pipeline.
type ReportEnqueuer interface {
	EnqueueReport(ctx context.Context, occasionID uuid.UUID) error
}

type OccasionService interface {
	Create(ctx context.Context, req dto.CreateOccasionRequest, createdBy *uuid.UUID) (*dto.OccasionRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error)
	List(ctx context.Context, limit, offset int) (*dto.OccasionListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOccasionRequest) (*dto.OccasionRecord, error)
	Submit(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error)
	Finalize(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error)
	Summary(ctx context.Context, id uuid.UUID) (*dto.FinancialRecord, error)
	// Import accepts a raw record in either schema version, upgrading the
	// old shape before validation.
	Import(ctx context.Context, raw []byte) (*dto.OccasionRecord, error)
	// ExportLegacy renders the occasion in the old flat shape. Lossy: the
	// regular/special pull-tab split and per-category over/short collapse.
	ExportLegacy(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type occasionService struct {
	repo     repository.OccasionRepository
	cat      *catalog.Catalog
	programs ProgramSource
	reports  ReportEnqueuer
	startup  decimal.Decimal
}

func NewOccasionService(
	repo repository.OccasionRepository,
	cat *catalog.Catalog,
	programs ProgramSource,
	reports ReportEnqueuer,
	cfg *config.Config,
) OccasionService {
	return &occasionService{
		repo:     repo,
		cat:      cat,
		programs: programs,
		reports:  reports,
		startup:  decimal.NewFromInt(int64(cfg.StartupCash)),
	}
}

func (s *occasionService) Create(ctx context.Context, req dto.CreateOccasionRequest, createdBy *uuid.UUID) (*dto.OccasionRecord, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date")
	}

	occ := &model.Occasion{
		Date:         date,
		SessionType:  req.SessionType,
		LionInCharge: req.LionInCharge,
		LionPullTabs: req.LionPullTabs,
		Status:       model.StatusDraft,
		CreatedBy:    createdBy,
	}

	// Pre-populate the paper count sheet and both drawers so the entry
	// screens always have their lines.
	for _, pt := range s.cat.PaperTypes() {
		occ.Paper = append(occ.Paper, model.PaperInventoryLine{ProductID: pt.ID})
	}
	for _, item := range s.cat.POSItems() {
		occ.POSSales = append(occ.POSSales, model.POSSaleLine{
			ItemID: item.ID, Price: item.Price, Category: item.Category,
		})
	}
	occ.MoneyCounts = []model.MoneyCountDrawer{
		{Drawer: model.DrawerBingo},
		{Drawer: model.DrawerPullTab},
	}

	for _, g := range s.sessionProgram(ctx, req.SessionType) {
		occ.Games = append(occ.Games, model.SessionGameResult{
			Number:         g.Number,
			Name:           g.Name,
			BasePrize:      g.BasePrize,
			PrizePerWinner: g.BasePrize,
			IsProgressive:  g.IsProgressive,
			IsEventGame:    g.IsEventGame,
		})
	}

	if err := s.repo.Create(ctx, occ); err != nil {
		return nil, err
	}
	return s.render(ctx, occ)
}

func (s *occasionService) Get(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error) {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, occ)
}

func (s *occasionService) List(ctx context.Context, limit, offset int) (*dto.OccasionListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	occs, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.OccasionListResponse{Occasions: make([]dto.OccasionListItem, 0, len(occs)), Total: total}
	for i := range occs {
		item := dto.OccasionListItem{
			ID:           occs[i].ID.String(),
			Date:         occs[i].Date.Format("2006-01-02"),
			SessionType:  occs[i].SessionType,
			Status:       strings.ToLower(occs[i].Status),
			TotalPlayers: occs[i].TotalPlayers,
		}
		if sum := occs[i].Summary; sum != nil {
			item.TotalSales = sum.TotalSales
			item.TotalNetProfit = sum.TotalNetProfit
		}
		resp.Occasions = append(resp.Occasions, item)
	}
	return resp, nil
}

func (s *occasionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOccasionRequest) (*dto.OccasionRecord, error) {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if isFinalized(occ.Status) {
		return nil, ErrOccasionFinalized
	}

	dto.ApplySections(occ, &req, s.cat, false)
	if err := s.persist(ctx, occ); err != nil {
		return nil, err
	}
	return s.render(ctx, occ)
}

func (s *occasionService) Submit(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error) {
	return s.transition(ctx, id, model.StatusDraft, model.StatusSubmitted)
}

func (s *occasionService) Finalize(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error) {
	rec, err := s.transition(ctx, id, model.StatusSubmitted, model.StatusFinalized)
	if err != nil {
		return nil, err
	}
	if s.reports != nil {
		if err := s.reports.EnqueueReport(ctx, id); err != nil {
			// the retry cron will pick the report up; finalization stands
			log.Error().Err(err).Str("occasion_id", id.String()).Msg("report enqueue failed")
		}
	}
	return rec, nil
}

func (s *occasionService) Summary(ctx context.Context, id uuid.UUID) (*dto.FinancialRecord, error) {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := engine.Recalculate(occ, s.startup)
	fin := dto.FinancialRecordFromSummary(summary)
	return &fin, nil
}

func (s *occasionService) Import(ctx context.Context, raw []byte) (*dto.OccasionRecord, error) {
	doc, err := legacy.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid record payload")
	}
	wasLegacy := legacy.IsLegacy(doc)
	if wasLegacy {
		doc = legacy.Upgrade(doc)
		raw, err = json.Marshal(doc)
		if err != nil {
			return nil, err
		}
	}

	var rec dto.OccasionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.New("invalid record payload")
	}

	occ := &model.Occasion{Status: normalizeStatus(rec.Occasion.Status)}
	occ.ID = uuid.New()
	req := dto.UpdateFromRecord(&rec)
	dto.ApplySections(occ, &req, s.cat, wasLegacy)

	engine.Recalculate(occ, s.startup)
	if err := s.repo.Create(ctx, occ); err != nil {
		return nil, err
	}
	log.Info().
		Str("occasion_id", occ.ID.String()).
		Bool("migrated", wasLegacy).
		Msg("occasion imported")
	return s.render(ctx, occ)
}

func (s *occasionService) ExportLegacy(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	doc, err := legacy.Parse(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(legacy.Downgrade(doc))
}

// ── helpers ─────────────────────────────────────────────────────

// render recomputes the summary from current section values, refreshes the
// display cache, and returns the canonical record. The cached summary row is
// never served without recomputation.
func (s *occasionService) render(ctx context.Context, occ *model.Occasion) (*dto.OccasionRecord, error) {
	summary := engine.Recalculate(occ, s.startup)
	summary.OccasionID = occ.ID
	if err := s.repo.SaveSummary(ctx, &summary); err != nil {
		return nil, err
	}
	rec := dto.RecordFromOccasion(occ, summary)
	return &rec, nil
}

func (s *occasionService) persist(ctx context.Context, occ *model.Occasion) error {
	engine.Recalculate(occ, s.startup)
	return s.repo.Update(ctx, occ)
}

func (s *occasionService) transition(ctx context.Context, id uuid.UUID, from, to string) (*dto.OccasionRecord, error) {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if isFinalized(occ.Status) {
		return nil, ErrOccasionFinalized
	}
	if !strings.EqualFold(occ.Status, from) {
		return nil, ErrBadTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	occ.Status = to
	return s.render(ctx, occ)
}

func (s *occasionService) sessionProgram(ctx context.Context, sessionType string) []catalog.SessionGame {
	if s.programs != nil {
		games, err := s.programs.Program(ctx, sessionType)
		if err == nil && len(games) > 0 {
			return games
		}
		if err != nil {
			log.Warn().Err(err).Str("session_type", sessionType).
				Msg("program service lookup failed, using built-in program")
		}
	}
	return s.cat.Program(sessionType)
}

func isFinalized(status string) bool {
	return strings.EqualFold(status, model.StatusFinalized)
}

func normalizeStatus(status string) string {
	switch strings.ToLower(status) {
	case model.StatusSubmitted:
		return model.StatusSubmitted
	case model.StatusFinalized:
		return model.StatusFinalized
	default:
		return model.StatusDraft
	}
}
