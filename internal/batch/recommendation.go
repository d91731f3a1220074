package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/turf-advisor/internal/models"
)

// Base stake per selection in euros. Scaled by the top pick's
// confidence tier.
var baseStake = decimal.NewFromInt(2)

var stakeMultipliers = map[models.Confidence]decimal.Decimal{
	models.ConfidenceHigh:   decimal.NewFromFloat(1.5),
	models.ConfidenceMedium: decimal.NewFromInt(1),
	models.ConfidenceLow:    decimal.NewFromFloat(0.5),
}

// Selections published per recommendation.
const maxSelections = 5

// buildRecommendation assembles the persisted artifact for an accepted
// race from already-computed analysis values.
func buildRecommendation(race *models.Race, analysis *models.RaceAnalysis, narrative string) *models.Recommendation {
	now := time.Now()

	n := maxSelections
	if len(analysis.Scores) < n {
		n = len(analysis.Scores)
	}

	selections := make([]models.Selection, 0, n)
	for i := 0; i < n; i++ {
		s := analysis.Scores[i]
		selections = append(selections, models.Selection{
			Rank:       i + 1,
			Number:     s.EntrantNumber,
			Name:       s.EntrantName,
			Confidence: s.Confidence,
			Rationale:  selectionRationale(s),
		})
	}

	return &models.Recommendation{
		ID:         uuid.New(),
		RaceID:     race.ID,
		Narrative:  narrative,
		Selections: selections,
		BetType:    primaryBetType(race, analysis),
		Stake:      stakeFor(analysis),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// primaryBetType picks the richest bet type the race declares that the
// analysis can actually fill, falling back to a simple win bet.
func primaryBetType(race *models.Race, analysis *models.RaceAnalysis) string {
	switch {
	case race.HasBetType(models.BetTypeQuinte) && len(analysis.Quinte) == 5:
		return models.BetTypeQuinte
	case race.HasBetType(models.BetTypeTrio) && len(analysis.Trio) == 3:
		return models.BetTypeTrio
	case race.HasBetType(models.BetTypeExacta) && len(analysis.ExactaPairs) > 0:
		return models.BetTypeExacta
	case race.HasBetType(models.BetTypePlace):
		return models.BetTypePlace
	default:
		return models.BetTypeWin
	}
}

// stakeFor sizes the per-selection stake from the top pick's
// confidence tier.
func stakeFor(analysis *models.RaceAnalysis) string {
	tier := models.ConfidenceLow
	if analysis.TopPick != nil {
		tier = analysis.TopPick.Confidence
	}

	mult, ok := stakeMultipliers[tier]
	if !ok {
		mult = stakeMultipliers[models.ConfidenceLow]
	}

	return baseStake.Mul(mult).StringFixed(2) + " EUR"
}

func selectionRationale(s models.EntrantScore) string {
	return fmt.Sprintf("total %.1f, %s %s", s.Total, s.Confidence, s.Category)
}
