package batch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/turf-advisor/internal/config"
	"github.com/yourusername/turf-advisor/internal/models"
	"github.com/yourusername/turf-advisor/internal/scoring"
)

// MockRaceRepository is a mock implementation of RaceRepository
type MockRaceRepository struct {
	mock.Mock
}

func (m *MockRaceRepository) ListForDate(ctx context.Context, date time.Time) ([]*models.Race, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Race), args.Error(1)
}

// MockRecommendationRepository is a mock implementation of RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) GetByRaceID(ctx context.Context, raceID uuid.UUID) (*models.Recommendation, error) {
	args := m.Called(ctx, raceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

// MockConnectionHistoryRepository is a mock implementation of ConnectionHistoryRepository
type MockConnectionHistoryRepository struct {
	mock.Mock
}

func (m *MockConnectionHistoryRepository) ListFinishPositions(ctx context.Context, name string, since time.Time) ([]int, error) {
	args := m.Called(ctx, name, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// stubWeather returns a fixed observation, or nothing.
type stubWeather struct {
	obs   *models.WeatherObservation
	calls int
}

func (s *stubWeather) SignalFor(ctx context.Context, hippodrome string) *models.WeatherObservation {
	s.calls++
	return s.obs
}

// stubRenderer returns a fixed narrative.
type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, race *models.Race, analysis *models.RaceAnalysis) string {
	return "narrative"
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestOrchestrator(raceRepo *MockRaceRepository, recRepo *MockRecommendationRepository, weather WeatherProvider, threshold float64) *Orchestrator {
	logger := testLogger()

	history := new(MockConnectionHistoryRepository)
	history.On("ListFinishPositions", mock.Anything, mock.Anything, mock.Anything).
		Return([]int{}, nil).Maybe()

	scorer := scoring.NewScorer(history, logger)
	analyzer := scoring.NewAnalyzer(scorer, logger)
	gate := scoring.NewQualityGate(logger)

	cfg := config.BatchConfig{QualityThreshold: threshold, InterRaceDelayMS: 0}

	return NewOrchestrator(raceRepo, recRepo, weather, analyzer, gate, stubRenderer{}, cfg, logger)
}

func floatPtr(v float64) *float64 { return &v }

func quinteRace(startTime *time.Time) *models.Race {
	return &models.Race{
		ID:         uuid.New(),
		Hippodrome: "Vincennes",
		RaceNumber: 1,
		Distance:   2700,
		StartTime:  startTime,
		BetTypes:   []string{models.BetTypeQuinte},
		Entrants: []models.Entrant{
			{Number: 1, Name: "A", RecentForm: "1p1p1p", Odds: floatPtr(3.0)},
			{Number: 2, Name: "B", RecentForm: "2p3p2p", Odds: floatPtr(6.0)},
			{Number: 3, Name: "C", RecentForm: "5p6p4p", Odds: floatPtr(15.0)},
		},
	}
}

func plainRace() *models.Race {
	return &models.Race{
		ID:         uuid.New(),
		Hippodrome: "Laval",
		RaceNumber: 2,
		Distance:   2100,
		Entrants: []models.Entrant{
			{Number: 1, Name: "D", RecentForm: "4p5p"},
			{Number: 2, Name: "E", RecentForm: "5p4p"},
		},
	}
}

func emptyRace() *models.Race {
	return &models.Race{
		ID:         uuid.New(),
		Hippodrome: "Vichy",
		RaceNumber: 3,
		Distance:   2400,
	}
}

func TestRunDailyBatchAcceptsAndPersists(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	race := quinteRace(nil)
	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{race}, nil)
	recRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(rec *models.Recommendation) bool {
		return rec.RaceID == race.ID && rec.Narrative == "narrative" && len(rec.Selections) > 0
	})).Return(nil).Once()

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 0, result.Errors)
	recRepo.AssertExpectations(t)
}

func TestRunDailyBatchGatesLowQualityRaces(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{plainRace()}, nil)

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 0, result.Accepted)
	recRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRunDailyBatchCountsEmptyRaceAsError(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{emptyRace(), quinteRace(nil)}, nil)
	recRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	// The entrant-less race fails analysis without aborting the batch.
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 1, result.Errors)
}

func TestRunDailyBatchContinuesAfterPersistFailure(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	first := quinteRace(nil)
	second := quinteRace(nil)
	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{first, second}, nil)
	recRepo.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	recRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	assert.Equal(t, 2, result.Analyzed)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 1, result.Errors)
}

func TestRunDailyBatchListFailure(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	assert.Equal(t, 0, result.Analyzed)
	assert.Equal(t, 1, result.Errors)
}

func TestRunDailyBatchNoRaces(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{}, nil)

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	result := o.RunDailyBatch(context.Background(), time.Now())

	assert.Equal(t, Result{}, result)
}

func TestRunDailyBatchAppliesWeatherSignal(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	start := time.Now().Add(2 * time.Hour)
	withStart := quinteRace(&start)
	noStart := quinteRace(nil)
	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{withStart, noStart}, nil)
	recRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	weather := &stubWeather{obs: &models.WeatherObservation{Condition: models.WeatherRain}}
	o := newTestOrchestrator(raceRepo, recRepo, weather, 60)

	o.RunDailyBatch(context.Background(), time.Now())

	// Only races with a start time get a weather lookup.
	assert.Equal(t, 1, weather.calls)
	assert.Equal(t, string(models.WeatherRain), withStart.WeatherCondition)
	assert.Empty(t, noStart.WeatherCondition)
}

func TestRunDailyBatchHonorsCancellation(t *testing.T) {
	raceRepo := new(MockRaceRepository)
	recRepo := new(MockRecommendationRepository)

	raceRepo.On("ListForDate", mock.Anything, mock.Anything).
		Return([]*models.Race{quinteRace(nil), quinteRace(nil)}, nil)

	o := newTestOrchestrator(raceRepo, recRepo, &stubWeather{}, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := o.RunDailyBatch(ctx, time.Now())

	assert.Equal(t, 0, result.Analyzed)
	assert.Equal(t, 0, result.Accepted)
}

func TestBuildRecommendation(t *testing.T) {
	race := quinteRace(nil)
	race.BetTypes = []string{models.BetTypeQuinte, models.BetTypeTrio}

	analysis := &models.RaceAnalysis{
		RaceID: race.ID,
		Scores: []models.EntrantScore{
			{EntrantNumber: 1, EntrantName: "A", Total: 80, Confidence: models.ConfidenceHigh, Category: models.CategoryFavorite},
			{EntrantNumber: 2, EntrantName: "B", Total: 65, Confidence: models.ConfidenceMedium, Category: models.CategoryOutsider},
			{EntrantNumber: 3, EntrantName: "C", Total: 50, Confidence: models.ConfidenceLow, Category: models.CategoryLongshot},
		},
		Quinte: []int{1, 2, 3},
		Trio:   []int{1, 2, 3},
	}
	analysis.TopPick = &analysis.Scores[0]

	rec := buildRecommendation(race, analysis, "some prose")

	require.NotNil(t, rec)
	assert.Equal(t, race.ID, rec.RaceID)
	assert.Equal(t, "some prose", rec.Narrative)
	require.Len(t, rec.Selections, 3)
	assert.Equal(t, 1, rec.Selections[0].Rank)
	assert.Equal(t, "A", rec.Selections[0].Name)

	// An incomplete quinte falls back to the trio.
	assert.Equal(t, models.BetTypeTrio, rec.BetType)

	// High-confidence top pick scales the base stake.
	assert.Equal(t, "3.00 EUR", rec.Stake)
}

func TestStakeForTiers(t *testing.T) {
	high := &models.RaceAnalysis{TopPick: &models.EntrantScore{Confidence: models.ConfidenceHigh}}
	medium := &models.RaceAnalysis{TopPick: &models.EntrantScore{Confidence: models.ConfidenceMedium}}
	low := &models.RaceAnalysis{TopPick: &models.EntrantScore{Confidence: models.ConfidenceLow}}

	assert.Equal(t, "3.00 EUR", stakeFor(high))
	assert.Equal(t, "2.00 EUR", stakeFor(medium))
	assert.Equal(t, "1.00 EUR", stakeFor(low))
	assert.Equal(t, "1.00 EUR", stakeFor(&models.RaceAnalysis{}))
}
