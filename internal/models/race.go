package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Race represents one race card entry with its declared entrants. The
// scorer treats races as read-only; only the weather pass annotates the
// observed condition before analysis.
type Race struct {
	ID               uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	Hippodrome       string     `db:"hippodrome" json:"hippodrome" validate:"required"`
	MeetingNumber    int        `db:"meeting_number" json:"meeting_number" validate:"gte=0"`
	RaceNumber       int        `db:"race_number" json:"race_number" validate:"required,gt=0"`
	Date             time.Time  `db:"date" json:"date" validate:"required"`
	StartTime        *time.Time `db:"start_time" json:"start_time"`
	Discipline       string     `db:"discipline" json:"discipline"`
	Distance         int        `db:"distance" json:"distance" validate:"gte=0"`
	PrizeMoney       float64    `db:"prize_money" json:"prize_money"`
	BetTypes         []string   `db:"bet_types" json:"bet_types"`
	TrackCondition   string     `db:"track_condition" json:"track_condition"`
	WeatherCondition string     `db:"weather_condition" json:"weather_condition"`
	Entrants         []Entrant  `db:"-" json:"entrants,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Label returns a short human-readable identifier like "R1C4 Vincennes".
func (r *Race) Label() string {
	return fmt.Sprintf("R%dC%d %s", r.MeetingNumber, r.RaceNumber, r.Hippodrome)
}

// HasBetType reports whether the race declares the given bet type.
func (r *Race) HasBetType(betType string) bool {
	for _, bt := range r.BetTypes {
		if bt == betType {
			return true
		}
	}
	return false
}
