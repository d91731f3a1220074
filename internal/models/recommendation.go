package models

import (
	"time"

	"github.com/google/uuid"
)

// Selection is one ranked entrant inside a published recommendation.
type Selection struct {
	Rank       int        `json:"rank"`
	Number     int        `json:"number"`
	Name       string     `json:"name"`
	Confidence Confidence `json:"confidence"`
	Rationale  string     `json:"rationale"`
}

// Recommendation is the externally visible artifact written for an
// accepted race. Upserted keyed by race id, once per race per day.
type Recommendation struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	RaceID     uuid.UUID   `db:"race_id" json:"race_id" validate:"required,uuid4"`
	Narrative  string      `db:"narrative" json:"narrative"`
	Selections []Selection `db:"selections" json:"selections"`
	BetType    string      `db:"bet_type" json:"bet_type"`
	Stake      string      `db:"stake" json:"stake"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}
