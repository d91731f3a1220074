package scoring

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/models"
)

// betTypeRichness ranks bet types from richest to poorest with their
// additive points. A declared quinté independently forces the quality
// score to 100; its 30-point tier is kept alongside the override for
// fidelity with the additive formula.
var betTypeRichness = []struct {
	betType string
	points  float64
}{
	{models.BetTypeQuinte, 30},
	{models.BetTypeTrio, 25},
	{models.BetTypeExacta, 20},
	{models.BetTypePlace, 15},
}

const betTypeFloorPoints = 10

// QualityGate scores how publish-worthy a race analysis is.
type QualityGate struct {
	logger *logrus.Logger
}

// NewQualityGate creates a new quality gate
func NewQualityGate(logger *logrus.Logger) *QualityGate {
	return &QualityGate{logger: logger}
}

// Score computes the quality score for a race and its analysis.
func (g *QualityGate) Score(race *models.Race, analysis *models.RaceAnalysis) models.QualityScore {
	qs := models.QualityScore{RaceID: race.ID}

	qs.BetTypePts = betTypePoints(race)
	qs.PrizePts = prizePoints(race.PrizeMoney)
	qs.GapPts = separationPoints(analysis)
	qs.ConfPts = confidencePoints(analysis.HighConfidenceCount())
	qs.FieldPts = fieldSizePoints(len(race.Entrants))

	qs.Score = qs.BetTypePts + qs.PrizePts + qs.GapPts + qs.ConfPts + qs.FieldPts

	// A declared quinté makes the race publishable regardless of the
	// additive components.
	if race.HasBetType(models.BetTypeQuinte) {
		qs.Score = 100
	}

	qs.Score = math.Max(0, math.Min(qs.Score, 100))

	g.logger.WithFields(logrus.Fields{
		"race":     race.Label(),
		"score":    qs.Score,
		"bet_type": qs.BetTypePts,
		"prize":    qs.PrizePts,
		"gap":      qs.GapPts,
		"conf":     qs.ConfPts,
		"field":    qs.FieldPts,
	}).Debug("Quality score computed")

	return qs
}

// betTypePoints awards points for the richest declared bet type.
func betTypePoints(race *models.Race) float64 {
	for _, tier := range betTypeRichness {
		if race.HasBetType(tier.betType) {
			return tier.points
		}
	}
	return betTypeFloorPoints
}

func prizePoints(prize float64) float64 {
	switch {
	case prize >= 100_000:
		return 20
	case prize >= 50_000:
		return 15
	case prize >= 30_000:
		return 10
	case prize >= 20_000:
		return 5
	default:
		return 0
	}
}

// separationPoints rewards a clear gap between the top two entrants.
// Awarded only when at least two entrants were scored.
func separationPoints(analysis *models.RaceAnalysis) float64 {
	if len(analysis.Scores) < 2 {
		return 0
	}
	gap := analysis.TopSeparation()
	switch {
	case gap >= 15:
		return 30
	case gap >= 10:
		return 25
	case gap >= 5:
		return 20
	default:
		return 10
	}
}

func confidencePoints(highCount int) float64 {
	switch {
	case highCount >= 3:
		return 10
	case highCount >= 2:
		return 7
	case highCount >= 1:
		return 5
	default:
		return 0
	}
}

// fieldSizePoints favors mid-sized fields where selections carry the
// most information.
func fieldSizePoints(size int) float64 {
	switch {
	case size >= 12 && size <= 18:
		return 10
	case size >= 8 && size <= 20:
		return 7
	default:
		return 3
	}
}
