package models

import (
	"time"

	"github.com/google/uuid"
)

// Confidence classifies how much trust the scorer puts in a total score.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Category classifies an entrant relative to the betting market.
type Category string

// Entrant categories.
const (
	CategoryFavorite Category = "favorite"
	CategoryOutsider Category = "outsider"
	CategoryLongshot Category = "longshot"
)

// Canonical bet type names, ordered from poorest to richest tier.
const (
	BetTypeWin    = "win"
	BetTypePlace  = "place"
	BetTypeExacta = "exacta"
	BetTypeTrio   = "trio"
	BetTypeQuinte = "quinte"
)

// BetTagOutsiderValue marks a long-priced entrant whose total score
// still suggests value.
const BetTagOutsiderValue = "outsider-value"

// EntrantScore holds the six sub-scores and the weighted total for one
// entrant. Recomputed on every analysis run, never cached.
type EntrantScore struct {
	EntrantNumber int        `json:"entrant_number"`
	EntrantName   string     `json:"entrant_name"`
	Performance   float64    `json:"performance"`
	Jockey        float64    `json:"jockey"`
	Trainer       float64    `json:"trainer"`
	OddsValue     float64    `json:"odds_value"`
	DistanceFit   float64    `json:"distance_fit"`
	ConditionsFit float64    `json:"conditions_fit"`
	Total         float64    `json:"total"`
	Confidence    Confidence `json:"confidence"`
	Category      Category   `json:"category"`
	BetTypes      []string   `json:"bet_types"`
}

// ExactaPair is an ordered (first, second) finisher pair suggestion.
type ExactaPair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// RaceAnalysis is the ranked scoring output for one race plus the
// derived recommendation sets. Ephemeral unless the quality gate
// accepts the race.
type RaceAnalysis struct {
	RaceID      uuid.UUID      `json:"race_id"`
	Hippodrome  string         `json:"hippodrome"`
	RaceNumber  int            `json:"race_number"`
	Distance    int            `json:"distance"`
	Discipline  string         `json:"discipline"`
	Scores      []EntrantScore `json:"scores"`
	TopPick     *EntrantScore  `json:"top_pick,omitempty"`
	Favorites   []EntrantScore `json:"favorites"`
	Outsiders   []EntrantScore `json:"outsiders"`
	Longshots   []EntrantScore `json:"longshots"`
	WinPicks    []int          `json:"win_picks"`
	PlacePicks  []int          `json:"place_picks"`
	ExactaPairs []ExactaPair   `json:"exacta_pairs"`
	Trio        []int          `json:"trio"`
	Quinte      []int          `json:"quinte"`
	AnalyzedAt  time.Time      `json:"analyzed_at"`
}

// HighConfidenceCount returns how many entrants scored a high
// confidence tier.
func (a *RaceAnalysis) HighConfidenceCount() int {
	n := 0
	for _, s := range a.Scores {
		if s.Confidence == ConfidenceHigh {
			n++
		}
	}
	return n
}

// TopSeparation returns the total-score gap between rank 1 and rank 2,
// or 0 when fewer than two entrants were scored.
func (a *RaceAnalysis) TopSeparation() float64 {
	if len(a.Scores) < 2 {
		return 0
	}
	return a.Scores[0].Total - a.Scores[1].Total
}

// QualityScore gates whether a race analysis is worth publishing. Used
// only for gating; never stored on its own.
type QualityScore struct {
	RaceID     uuid.UUID `json:"race_id"`
	Score      float64   `json:"score"`
	BetTypePts float64   `json:"bet_type_pts"`
	PrizePts   float64   `json:"prize_pts"`
	GapPts     float64   `json:"gap_pts"`
	ConfPts    float64   `json:"conf_pts"`
	FieldPts   float64   `json:"field_pts"`
}
