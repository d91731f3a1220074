package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/turf-advisor/internal/models"
)

func newTestGate() *QualityGate {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewQualityGate(logger)
}

func analysisWithScores(totals ...float64) *models.RaceAnalysis {
	scores := make([]models.EntrantScore, len(totals))
	for i, total := range totals {
		scores[i] = models.EntrantScore{
			EntrantNumber: i + 1,
			Total:         total,
			Confidence:    confidenceFor(total),
		}
	}
	return &models.RaceAnalysis{Scores: scores}
}

func TestQualityScoreQuinteAlwaysPublishable(t *testing.T) {
	gate := newTestGate()

	race := &models.Race{
		ID:       uuid.New(),
		BetTypes: []string{models.BetTypeQuinte},
		Entrants: make([]models.Entrant, 14),
	}
	// Even a weak, undifferentiated analysis is forced to 100.
	qs := gate.Score(race, analysisWithScores(50, 49, 48))

	assert.Equal(t, 100.0, qs.Score)
}

func TestQualityScoreAdditiveComponents(t *testing.T) {
	gate := newTestGate()

	race := &models.Race{
		ID:         uuid.New(),
		BetTypes:   []string{models.BetTypeTrio, models.BetTypePlace},
		PrizeMoney: 60_000,
		Entrants:   make([]models.Entrant, 14),
	}
	analysis := analysisWithScores(82, 70, 60)

	qs := gate.Score(race, analysis)

	assert.Equal(t, 25.0, qs.BetTypePts) // trio is the richest declared type
	assert.Equal(t, 15.0, qs.PrizePts)
	assert.Equal(t, 25.0, qs.GapPts) // 12-point separation
	assert.Equal(t, 5.0, qs.ConfPts) // one high-confidence entrant
	assert.Equal(t, 10.0, qs.FieldPts)
	assert.Equal(t, 80.0, qs.Score)
}

func TestQualityScorePoorRace(t *testing.T) {
	gate := newTestGate()

	race := &models.Race{
		ID:       uuid.New(),
		Entrants: make([]models.Entrant, 5),
	}
	qs := gate.Score(race, analysisWithScores(51, 50))

	// floor bet type 10, no prize, tight gap 10, no high confidence, odd field 3
	assert.Equal(t, 23.0, qs.Score)
}

func TestBetTypePoints(t *testing.T) {
	tests := []struct {
		name     string
		betTypes []string
		expected float64
	}{
		{"quinte", []string{models.BetTypeWin, models.BetTypeQuinte}, 30},
		{"trio", []string{models.BetTypeTrio}, 25},
		{"exacta", []string{models.BetTypeExacta}, 20},
		{"place", []string{models.BetTypePlace}, 15},
		{"win only", []string{models.BetTypeWin}, 10},
		{"none declared", nil, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			race := &models.Race{BetTypes: tt.betTypes}
			assert.Equal(t, tt.expected, betTypePoints(race))
		})
	}
}

func TestPrizePoints(t *testing.T) {
	assert.Equal(t, 20.0, prizePoints(150_000))
	assert.Equal(t, 15.0, prizePoints(50_000))
	assert.Equal(t, 10.0, prizePoints(30_000))
	assert.Equal(t, 5.0, prizePoints(20_000))
	assert.Equal(t, 0.0, prizePoints(10_000))
}

func TestSeparationPoints(t *testing.T) {
	assert.Equal(t, 30.0, separationPoints(analysisWithScores(80, 65)))
	assert.Equal(t, 25.0, separationPoints(analysisWithScores(80, 70)))
	assert.Equal(t, 20.0, separationPoints(analysisWithScores(80, 75)))
	assert.Equal(t, 10.0, separationPoints(analysisWithScores(80, 79)))

	// A single-entrant analysis has no separation to reward.
	assert.Equal(t, 0.0, separationPoints(analysisWithScores(80)))
}

func TestConfidencePoints(t *testing.T) {
	assert.Equal(t, 10.0, confidencePoints(3))
	assert.Equal(t, 7.0, confidencePoints(2))
	assert.Equal(t, 5.0, confidencePoints(1))
	assert.Equal(t, 0.0, confidencePoints(0))
}

func TestFieldSizePoints(t *testing.T) {
	assert.Equal(t, 10.0, fieldSizePoints(14))
	assert.Equal(t, 7.0, fieldSizePoints(9))
	assert.Equal(t, 7.0, fieldSizePoints(20))
	assert.Equal(t, 3.0, fieldSizePoints(5))
	assert.Equal(t, 3.0, fieldSizePoints(24))
}

func TestQualityScoreClampedToHundred(t *testing.T) {
	gate := newTestGate()

	race := &models.Race{
		ID:         uuid.New(),
		BetTypes:   []string{models.BetTypeTrio},
		PrizeMoney: 200_000,
		Entrants:   make([]models.Entrant, 14),
	}
	qs := gate.Score(race, analysisWithScores(95, 78, 76, 60))

	assert.LessOrEqual(t, qs.Score, 100.0)
	assert.GreaterOrEqual(t, qs.Score, 0.0)
}
