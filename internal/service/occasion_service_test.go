package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/dto"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/legacy"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

// ── fakes ───────────────────────────────────────────────────────

type fakeOccasionRepo struct {
	occasions map[uuid.UUID]*model.Occasion
	summaries map[uuid.UUID]model.FinancialSummary
}

var _ repository.OccasionRepository = (*fakeOccasionRepo)(nil)

func newFakeOccasionRepo() *fakeOccasionRepo {
	return &fakeOccasionRepo{
		occasions: map[uuid.UUID]*model.Occasion{},
		summaries: map[uuid.UUID]model.FinancialSummary{},
	}
}

func (f *fakeOccasionRepo) Create(_ context.Context, o *model.Occasion) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	f.occasions[o.ID] = o
	return nil
}

func (f *fakeOccasionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Occasion, error) {
	o, ok := f.occasions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOccasionRepo) List(_ context.Context, limit, offset int) ([]model.Occasion, int64, error) {
	occs := make([]model.Occasion, 0, len(f.occasions))
	for _, o := range f.occasions {
		occs = append(occs, *o)
	}
	return occs, int64(len(occs)), nil
}

func (f *fakeOccasionRepo) Update(_ context.Context, o *model.Occasion) error {
	if _, ok := f.occasions[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.occasions[o.ID] = o
	return nil
}

func (f *fakeOccasionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := f.occasions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOccasionRepo) SaveSummary(_ context.Context, s *model.FinancialSummary) error {
	f.summaries[s.OccasionID] = *s
	return nil
}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeEnqueuer) EnqueueReport(_ context.Context, occasionID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, occasionID)
	return nil
}

type fakePrograms struct {
	games []catalog.SessionGame
	err   error
}

func (f *fakePrograms) Program(_ context.Context, sessionType string) ([]catalog.SessionGame, error) {
	return f.games, f.err
}

func newService(repo *fakeOccasionRepo, programs ProgramSource, reports ReportEnqueuer) OccasionService {
	return NewOccasionService(repo, catalog.Default(), programs, reports, &config.Config{StartupCash: 1000})
}

// ── create ──────────────────────────────────────────────────────

func TestCreatePrepopulatesSections(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, nil)

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "6-2", LionInCharge: "Bob",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "draft", rec.Occasion.Status)
	assert.Len(t, rec.Games, 17)
	assert.True(t, rec.Games[12].IsProgressive, "game 13 carries the progressive")

	cat := catalog.Default()
	assert.Len(t, rec.PaperBingo, len(cat.PaperTypes()))
	assert.Len(t, rec.POSSales, len(cat.POSItems()))

	small, ok := rec.POSSales["small-machine"]
	require.True(t, ok)
	assert.True(t, small.Price.Equal(decimal.NewFromInt(40)))

	require.NotNil(t, rec.Financial)
	assert.True(t, rec.Financial.BingoStartupCash.Equal(decimal.NewFromInt(1000)))
}

func TestCreateUsesRemoteProgramWhenAvailable(t *testing.T) {
	repo := newFakeOccasionRepo()
	programs := &fakePrograms{games: []catalog.SessionGame{
		{Number: 1, Name: "Warm Up", BasePrize: decimal.NewFromInt(100)},
		{Number: 2, Name: "Coverall", BasePrize: decimal.NewFromInt(250)},
	}}
	svc := newService(repo, programs, nil)

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "6-2",
	}, nil)
	require.NoError(t, err)
	require.Len(t, rec.Games, 2)
	assert.Equal(t, "Warm Up", rec.Games[0].Name)
}

func TestCreateFallsBackToBuiltInProgram(t *testing.T) {
	repo := newFakeOccasionRepo()
	programs := &fakePrograms{err: errors.New("service unreachable")}
	svc := newService(repo, programs, nil)

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "6-2",
	}, nil)
	require.NoError(t, err)
	assert.Len(t, rec.Games, 17, "built-in program backs a dead program service")
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc := newService(newFakeOccasionRepo(), nil, nil)
	_, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "01/06/2025", SessionType: "6-2",
	}, nil)
	assert.Error(t, err)
}

// ── lifecycle ───────────────────────────────────────────────────

func TestSubmitAndFinalizeFlow(t *testing.T) {
	repo := newFakeOccasionRepo()
	reports := &fakeEnqueuer{}
	svc := newService(repo, nil, reports)

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "5-1",
	}, nil)
	require.NoError(t, err)
	id, err := uuid.Parse(rec.ID)
	require.NoError(t, err)

	// finalize before submit is not a legal transition
	_, err = svc.Finalize(context.Background(), id)
	assert.ErrorIs(t, err, ErrBadTransition)

	rec, err = svc.Submit(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "submitted", rec.Occasion.Status)

	rec, err = svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "finalized", rec.Occasion.Status)
	require.Len(t, reports.enqueued, 1)
	assert.Equal(t, id, reports.enqueued[0])

	// finalized records are immutable: no re-submit, no edit
	_, err = svc.Submit(context.Background(), id)
	assert.ErrorIs(t, err, ErrOccasionFinalized)
	_, err = svc.Update(context.Background(), id, dto.UpdateOccasionRequest{})
	assert.ErrorIs(t, err, ErrOccasionFinalized)
}

func TestFinalizeSurvivesEnqueueFailure(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, &fakeEnqueuer{err: errors.New("redis down")})

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "5-1",
	}, nil)
	require.NoError(t, err)
	id := uuid.MustParse(rec.ID)

	_, err = svc.Submit(context.Background(), id)
	require.NoError(t, err)

	rec, err = svc.Finalize(context.Background(), id)
	require.NoError(t, err, "finalization stands even when the queue is down")
	assert.Equal(t, "finalized", rec.Occasion.Status)
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, nil)

	rec, err := svc.Create(context.Background(), dto.CreateOccasionRequest{
		Date: "2025-01-06", SessionType: "6-2",
	}, nil)
	require.NoError(t, err)
	id := uuid.MustParse(rec.ID)

	req := dto.UpdateOccasionRequest{
		Occasion: dto.OccasionInfo{Date: "2025-01-06", SessionType: "6-2", TotalPlayers: 100},
		PaperBingo: map[string]dto.PaperLineRecord{
			// submitted sold value is a lie; the engine recomputes it
			"eb": {Start: 100, End: 40, Free: 10, Sold: 999},
		},
		POSSales: map[string]dto.POSLineRecord{
			// submitted price is tampered; the catalog price wins
			"small-machine": {Price: decimal.NewFromInt(1), Quantity: 10},
		},
	}
	out, err := svc.Update(context.Background(), id, req)
	require.NoError(t, err)

	assert.Equal(t, 50, out.PaperBingo["eb"].Sold)
	assert.True(t, out.POSSales["small-machine"].Total.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, out.Financial)
	assert.True(t, out.Financial.BingoElectronicSales.Equal(decimal.NewFromInt(400)))
}

// ── import and export ───────────────────────────────────────────

const legacyImportFixture = `{
  "occasion": {"date": "2025-01-06", "sessionType": "6-2", "birthdays": 3, "totalPlayers": 100},
  "progressive": {"jackpot": 2000, "consolation": 200},
  "posSales": {"small-machine": {"price": 40, "quantity": 10, "total": 400}},
  "games": [
    {"number": 1, "name": "Coverall", "winners": 2, "prizePerWinner": 100, "totalPayout": 200, "checkPayment": true}
  ],
  "pullTabs": [
    {"gameName": "Black Jack", "sales": 960, "prizesPaid": 599, "isSpecialEvent": false}
  ],
  "moneyCount": {
    "bingo": {"100": 12, "20": 10, "coins": 3.50, "checks": 200},
    "pullTab": {"100": 5, "10": 3, "coins": 1.25, "checks": 60}
  },
  "financial": {"totalElectronicSales": 400}
}`

func TestImportLegacyRecord(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, nil)

	rec, err := svc.Import(context.Background(), []byte(legacyImportFixture))
	require.NoError(t, err)

	assert.Equal(t, "draft", rec.Occasion.Status)
	assert.Equal(t, 3, rec.Occasion.BirthdayBOGOs)
	assert.True(t, rec.Occasion.Progressive.Jackpot.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 21, rec.Occasion.Progressive.BallsNeeded, "missing balls default to the minimum")

	// historical pull-tab drawer checks survive the legacy import path
	assert.True(t, rec.MoneyCount.PullTab.Checks.Equal(decimal.NewFromInt(60)))

	require.NotNil(t, rec.Financial)
	assert.True(t, rec.Financial.BingoElectronicSales.Equal(decimal.NewFromInt(400)))
	assert.Len(t, repo.occasions, 1)
}

func TestImportCurrentRecordDropsPullTabChecks(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, nil)

	raw := `{
	  "occasion": {"date": "2025-01-06", "sessionType": "6-2", "birthdayBOGOs": 1,
	    "progressive": {"jackpot": 1000, "ballsNeeded": 48, "ballsActual": 0, "consolation": 150}},
	  "paperBingo": {}, "posSales": {}, "games": [], "pullTabs": [],
	  "moneyCount": {"bingo": {"checks": 150}, "pullTab": {"100": 2, "checks": 75}}
	}`
	rec, err := svc.Import(context.Background(), []byte(raw))
	require.NoError(t, err)

	assert.True(t, rec.MoneyCount.Bingo.Checks.Equal(decimal.NewFromInt(150)))
	assert.True(t, rec.MoneyCount.PullTab.Checks.IsZero(),
		"current-schema writes cannot place checks in the pull-tab drawer")
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	svc := newService(newFakeOccasionRepo(), nil, nil)
	_, err := svc.Import(context.Background(), []byte(`{"occasion": [1,2,3]`))
	assert.Error(t, err)
}

func TestExportLegacyShape(t *testing.T) {
	repo := newFakeOccasionRepo()
	svc := newService(repo, nil, nil)

	rec, err := svc.Import(context.Background(), []byte(legacyImportFixture))
	require.NoError(t, err)
	id := uuid.MustParse(rec.ID)

	raw, err := svc.ExportLegacy(context.Background(), id)
	require.NoError(t, err)

	doc, err := legacy.Parse(raw)
	require.NoError(t, err)
	assert.True(t, legacy.IsLegacy(doc), "export must look legacy to the detector")

	fin, ok := doc["financial"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fin, "grossSales")
	assert.Contains(t, fin, "totalElectronicSales")
	assert.Contains(t, doc, "progressive")
}

func TestGetUnknownOccasion(t *testing.T) {
	svc := newService(newFakeOccasionRepo(), nil, nil)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
