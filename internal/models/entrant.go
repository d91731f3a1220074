package models

import (
	"encoding/json"
	"time"
)

// HistoricalPerformance is one past start of an entrant. At most the
// last ten are loaded per entrant.
type HistoricalPerformance struct {
	Date           time.Time       `db:"date" json:"date"`
	FinishPosition int             `db:"finish_position" json:"finish_position"`
	Distance       int             `db:"distance" json:"distance"`
	TrackCondition string          `db:"track_condition" json:"track_condition"`
	Metadata       json.RawMessage `db:"metadata" json:"metadata,omitempty"`
}

// Entrant represents a horse declared in a race. Immutable once loaded
// for a scoring pass.
type Entrant struct {
	Number        int                     `db:"number" json:"number" validate:"required,gt=0"`
	Name          string                  `db:"name" json:"name" validate:"required"`
	Jockey        *string                 `db:"jockey" json:"jockey"`
	Trainer       *string                 `db:"trainer" json:"trainer"`
	RecentForm    string                  `db:"recent_form" json:"recent_form"`
	Age           int                     `db:"age" json:"age"`
	Weight        float64                 `db:"weight" json:"weight"`
	CareerStarts  int                     `db:"career_starts" json:"career_starts"`
	CareerWins    int                     `db:"career_wins" json:"career_wins"`
	TotalEarnings float64                 `db:"total_earnings" json:"total_earnings"`
	Odds          *float64                `db:"odds" json:"odds"`
	Performances  []HistoricalPerformance `db:"-" json:"performances,omitempty"`
}

// GetOdds returns the current odds or the given fallback if unset.
func (e *Entrant) GetOdds(fallback float64) float64 {
	if e.Odds == nil {
		return fallback
	}
	return *e.Odds
}

// GetJockey returns the jockey name or empty string if unset.
func (e *Entrant) GetJockey() string {
	if e.Jockey == nil {
		return ""
	}
	return *e.Jockey
}

// GetTrainer returns the trainer name or empty string if unset.
func (e *Entrant) GetTrainer() string {
	if e.Trainer == nil {
		return ""
	}
	return *e.Trainer
}
