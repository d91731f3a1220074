package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/turf-advisor/internal/database"
	"github.com/yourusername/turf-advisor/internal/models"
)

// PostgresWeatherCacheRepository implements WeatherCacheRepository for
// PostgreSQL. This is the persistent tier: entries written here are the
// source of truth after a process restart.
type PostgresWeatherCacheRepository struct {
	db *database.DB
}

// NewPostgresWeatherCacheRepository creates a new weather cache repository
func NewPostgresWeatherCacheRepository(db *database.DB) WeatherCacheRepository {
	return &PostgresWeatherCacheRepository{db: db}
}

// Get retrieves the stored observation for a location key. Freshness is
// the caller's concern; stale rows are returned as-is.
func (r *PostgresWeatherCacheRepository) Get(ctx context.Context, locationKey string) (*models.WeatherObservation, error) {
	query := `
		SELECT location_key, temperature, humidity, wind_speed, precipitation,
		       condition, description, captured_at
		FROM weather_cache
		WHERE location_key = $1
	`

	obs := &models.WeatherObservation{}
	err := r.db.GetPool().QueryRow(ctx, query, locationKey).Scan(
		&obs.LocationKey, &obs.Temperature, &obs.Humidity, &obs.WindSpeed,
		&obs.Precipitation, &obs.Condition, &obs.Description, &obs.CapturedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached weather: %w", err)
	}

	return obs, nil
}

// Put creates or replaces the stored observation for a location key
func (r *PostgresWeatherCacheRepository) Put(ctx context.Context, obs *models.WeatherObservation) error {
	query := `
		INSERT INTO weather_cache (location_key, temperature, humidity, wind_speed,
		                           precipitation, condition, description, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (location_key) DO UPDATE SET
			temperature = EXCLUDED.temperature,
			humidity = EXCLUDED.humidity,
			wind_speed = EXCLUDED.wind_speed,
			precipitation = EXCLUDED.precipitation,
			condition = EXCLUDED.condition,
			description = EXCLUDED.description,
			captured_at = EXCLUDED.captured_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		obs.LocationKey, obs.Temperature, obs.Humidity, obs.WindSpeed,
		obs.Precipitation, obs.Condition, obs.Description, obs.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cached weather: %w", err)
	}

	return nil
}
