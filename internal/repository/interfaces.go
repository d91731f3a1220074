// Package repository defines data access interfaces and their
// PostgreSQL implementations.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/turf-advisor/internal/models"
)

// RaceRepository loads race cards for the analysis batch. Each race
// embeds its entrants and each entrant's last ten historical
// performances.
type RaceRepository interface {
	ListForDate(ctx context.Context, date time.Time) ([]*models.Race, error)
}

// ConnectionHistoryRepository looks up recent finishing positions for a
// jockey or trainer across all races.
type ConnectionHistoryRepository interface {
	ListFinishPositions(ctx context.Context, name string, since time.Time) ([]int, error)
}

// RecommendationRepository persists published recommendations, keyed by
// race so a race is never recommended twice for the same day.
type RecommendationRepository interface {
	Upsert(ctx context.Context, rec *models.Recommendation) error
	GetByRaceID(ctx context.Context, raceID uuid.UUID) (*models.Recommendation, error)
}

// WeatherCacheRepository is the persistent tier of the weather signal
// cache. Entries survive process restarts.
type WeatherCacheRepository interface {
	Get(ctx context.Context, locationKey string) (*models.WeatherObservation, error)
	Put(ctx context.Context, obs *models.WeatherObservation) error
}
