// Package scoring computes entrant scores, race analyses, and
// publish-worthiness quality scores.
package scoring

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/models"
	"github.com/yourusername/turf-advisor/internal/repository"
)

// Combination weights. Must sum to exactly 1.0.
const (
	weightPerformance = 0.30
	weightJockey      = 0.20
	weightTrainer     = 0.15
	weightOdds        = 0.15
	weightDistance    = 0.10
	weightConditions  = 0.10
)

const (
	// neutralScore substitutes for any sub-score whose supporting data
	// is absent.
	neutralScore = 50.0

	// formDecay discounts each older finishing position relative to the
	// one before it.
	formDecay = 0.85

	// maxFormPositions bounds how many recent-form positions count.
	maxFormPositions = 5

	// connectionLookbackDays is the jockey/trainer history window,
	// anchored to the time of analysis.
	connectionLookbackDays = 30

	// distanceTolerance selects comparable historical starts around the
	// current race distance.
	distanceTolerance = 200

	// defaultOddsForCategory stands in for missing odds during
	// favorite/outsider classification only.
	defaultOddsForCategory = 10.0
)

// WeightsSum returns the sum of the combination weights; exposed so the
// invariant is testable.
func WeightsSum() float64 {
	return weightPerformance + weightJockey + weightTrainer + weightOdds + weightDistance + weightConditions
}

// Scorer computes an EntrantScore for one entrant in the context of its
// race. Apart from the jockey/trainer history lookups it is a pure
// function of its inputs.
type Scorer struct {
	history repository.ConnectionHistoryRepository
	logger  *logrus.Logger
	now     func() time.Time
}

// NewScorer creates a new entrant scorer
func NewScorer(history repository.ConnectionHistoryRepository, logger *logrus.Logger) *Scorer {
	return &Scorer{
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// Score computes the six sub-scores and their weighted combination for
// one entrant.
func (s *Scorer) Score(ctx context.Context, race *models.Race, entrant *models.Entrant) models.EntrantScore {
	perf := performanceScore(entrant.RecentForm)
	jockey := s.connectionScore(ctx, entrant.GetJockey(), 0.7, 0.3)
	trainer := s.connectionScore(ctx, entrant.GetTrainer(), 0.6, 0.4)
	odds := oddsValueScore(entrant.Odds, perf)
	distance := fitScore(entrant.Performances, func(p models.HistoricalPerformance) bool {
		diff := p.Distance - race.Distance
		return diff >= -distanceTolerance && diff <= distanceTolerance
	})
	conditions := fitScore(entrant.Performances, func(p models.HistoricalPerformance) bool {
		return race.TrackCondition != "" && p.TrackCondition == race.TrackCondition
	})

	total := weightPerformance*perf +
		weightJockey*jockey +
		weightTrainer*trainer +
		weightOdds*odds +
		weightDistance*distance +
		weightConditions*conditions

	score := models.EntrantScore{
		EntrantNumber: entrant.Number,
		EntrantName:   entrant.Name,
		Performance:   perf,
		Jockey:        jockey,
		Trainer:       trainer,
		OddsValue:     odds,
		DistanceFit:   distance,
		ConditionsFit: conditions,
		Total:         total,
		Confidence:    confidenceFor(total),
		Category:      categoryFor(total, entrant.Odds),
		BetTypes:      betTypesFor(total, entrant.Odds),
	}

	return score
}

// performanceScore parses the recent-form code and computes a
// decay-weighted average of position points, most recent first.
func performanceScore(recentForm string) float64 {
	positions := ParseRecentForm(recentForm, maxFormPositions)
	if len(positions) == 0 {
		return neutralScore
	}

	sum := 0.0
	weightTotal := 0.0
	weight := 1.0
	for _, pos := range positions {
		sum += positionPoints(pos) * weight
		weightTotal += weight
		weight *= formDecay
	}

	return math.Min(sum/weightTotal, 100)
}

// ParseRecentForm extracts up to max numeric finishing positions from a
// form code such as "1p2p3p". Zero and non-numeric tokens are skipped.
func ParseRecentForm(code string, max int) []int {
	positions := make([]int, 0, max)
	current := 0
	inNumber := false

	flush := func() {
		if inNumber && current > 0 && len(positions) < max {
			positions = append(positions, current)
		}
		current = 0
		inNumber = false
	}

	for _, r := range code {
		if r >= '0' && r <= '9' {
			current = current*10 + int(r-'0')
			inNumber = true
			continue
		}
		flush()
	}
	flush()

	return positions
}

// positionPoints maps a finishing position onto score points.
func positionPoints(pos int) float64 {
	switch {
	case pos == 1:
		return 100
	case pos == 2:
		return 80
	case pos == 3:
		return 60
	case pos <= 5:
		return 40
	default:
		return 20
	}
}

// connectionScore scores a jockey or trainer from their trailing-30-day
// record. Missing name, empty history, or a failed lookup all yield the
// neutral score.
func (s *Scorer) connectionScore(ctx context.Context, name string, winWeight, top3Weight float64) float64 {
	if name == "" {
		return neutralScore
	}

	since := s.now().AddDate(0, 0, -connectionLookbackDays)
	positions, err := s.history.ListFinishPositions(ctx, name, since)
	if err != nil {
		s.logger.WithError(err).WithField("connection", name).Warn("Connection history lookup failed, using neutral score")
		return neutralScore
	}
	if len(positions) == 0 {
		return neutralScore
	}

	wins := 0
	top3 := 0
	for _, pos := range positions {
		if pos == 1 {
			wins++
		}
		if pos >= 1 && pos <= 3 {
			top3++
		}
	}

	total := float64(len(positions))
	winRate := float64(wins) / total * 100
	top3Rate := float64(top3) / total * 100

	return math.Min(winRate*winWeight+top3Rate*top3Weight, 100)
}

// oddsValueScore rewards cheap-but-strong and long-but-plausible
// prices.
func oddsValueScore(odds *float64, performance float64) float64 {
	if odds == nil {
		return neutralScore
	}
	o := *odds
	switch {
	case o < 2 && performance > 70:
		return 90
	case o >= 2 && o <= 5 && performance > 60:
		return 85
	case o > 10 && performance > 50:
		return 70
	case o > 20:
		return 30
	default:
		return neutralScore
	}
}

// fitScore averages finishing positions over the historical starts the
// filter keeps and converts the average to points. No matching start
// yields the neutral score.
func fitScore(perfs []models.HistoricalPerformance, keep func(models.HistoricalPerformance) bool) float64 {
	sum := 0
	count := 0
	for _, p := range perfs {
		if keep(p) {
			sum += p.FinishPosition
			count++
		}
	}
	if count == 0 {
		return neutralScore
	}

	avg := float64(sum) / float64(count)
	return math.Max(0, 100-(avg-1)*10)
}

func confidenceFor(total float64) models.Confidence {
	switch {
	case total >= 75:
		return models.ConfidenceHigh
	case total >= 55:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// categoryFor classifies an entrant from its total score and odds.
// Missing odds default to 10 for this classification only.
func categoryFor(total float64, odds *float64) models.Category {
	o := defaultOddsForCategory
	if odds != nil {
		o = *odds
	}
	switch {
	case total >= 70 && o < 5:
		return models.CategoryFavorite
	case total >= 55 && o >= 5 && o <= 15:
		return models.CategoryOutsider
	default:
		return models.CategoryLongshot
	}
}

func betTypesFor(total float64, odds *float64) []string {
	var types []string
	switch {
	case total >= 75:
		types = []string{models.BetTypeWin, models.BetTypePlace, models.BetTypeExacta}
	case total >= 60:
		types = []string{models.BetTypePlace, models.BetTypeExacta}
	case total >= 50:
		types = []string{models.BetTypePlace}
	}

	if odds != nil && *odds > 10 && total >= 55 {
		types = append(types, models.BetTagOutsiderValue)
	}

	return types
}
