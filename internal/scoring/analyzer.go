package scoring

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/models"
)

// Recommendation set sizes.
const (
	maxFavorites     = 3
	maxOutsiders     = 3
	maxLongshots     = 2
	longshotMinTotal = 45.0
	winPickCount     = 2
	placePickCount   = 4
	trioCount        = 3
	quinteCount      = 5
)

// Analyzer runs the scorer over a full race card and derives the
// recommendation sets from the ranked scores.
type Analyzer struct {
	scorer *Scorer
	logger *logrus.Logger
}

// NewAnalyzer creates a new race analyzer
func NewAnalyzer(scorer *Scorer, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		scorer: scorer,
		logger: logger,
	}
}

// Analyze scores every entrant, ranks them by total score, and builds
// the recommendation sets. Returns ErrNoEntrants for an empty card.
func (a *Analyzer) Analyze(ctx context.Context, race *models.Race) (*models.RaceAnalysis, error) {
	if len(race.Entrants) == 0 {
		a.logger.WithField("race", race.Label()).Warn("Race has no entrants, skipping analysis")
		return nil, models.ErrNoEntrants
	}

	scores := make([]models.EntrantScore, 0, len(race.Entrants))
	for i := range race.Entrants {
		scores = append(scores, a.scorer.Score(ctx, race, &race.Entrants[i]))
	}

	// Stable sort keeps entrant-number order on equal totals; entrants
	// arrive from the repository ordered by number.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Total > scores[j].Total
	})

	analysis := &models.RaceAnalysis{
		RaceID:     race.ID,
		Hippodrome: race.Hippodrome,
		RaceNumber: race.RaceNumber,
		Distance:   race.Distance,
		Discipline: race.Discipline,
		Scores:     scores,
		TopPick:    &scores[0],
		Favorites:  filterByCategory(scores, models.CategoryFavorite, maxFavorites, 0),
		Outsiders:  filterByCategory(scores, models.CategoryOutsider, maxOutsiders, 0),
		Longshots:  filterByCategory(scores, models.CategoryLongshot, maxLongshots, longshotMinTotal),
		WinPicks:   topNumbers(scores, winPickCount),
		PlacePicks: topNumbers(scores, placePickCount),
		Trio:       topNumbers(scores, trioCount),
		Quinte:     topNumbers(scores, quinteCount),
		AnalyzedAt: time.Now(),
	}

	if len(scores) >= 2 {
		analysis.ExactaPairs = append(analysis.ExactaPairs, models.ExactaPair{
			First:  scores[0].EntrantNumber,
			Second: scores[1].EntrantNumber,
		})
	}
	if len(scores) >= 3 {
		analysis.ExactaPairs = append(analysis.ExactaPairs, models.ExactaPair{
			First:  scores[0].EntrantNumber,
			Second: scores[2].EntrantNumber,
		})
	}

	a.logger.WithFields(logrus.Fields{
		"race":      race.Label(),
		"entrants":  len(scores),
		"top_pick":  analysis.TopPick.EntrantNumber,
		"top_total": analysis.TopPick.Total,
	}).Debug("Race analysis complete")

	return analysis, nil
}

// filterByCategory keeps the first limit scores of the given category,
// in rank order, skipping those below minTotal.
func filterByCategory(scores []models.EntrantScore, cat models.Category, limit int, minTotal float64) []models.EntrantScore {
	out := make([]models.EntrantScore, 0, limit)
	for _, s := range scores {
		if len(out) == limit {
			break
		}
		if s.Category == cat && s.Total >= minTotal {
			out = append(out, s)
		}
	}
	return out
}

// topNumbers returns the entrant numbers of the first n ranked scores.
func topNumbers(scores []models.EntrantScore, n int) []int {
	if n > len(scores) {
		n = len(scores)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = scores[i].EntrantNumber
	}
	return out
}
