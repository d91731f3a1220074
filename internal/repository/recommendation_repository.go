package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/turf-advisor/internal/database"
	"github.com/yourusername/turf-advisor/internal/models"
)

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Upsert creates or replaces the recommendation for a race. The
// race_id unique constraint guarantees one published artifact per race.
func (r *PostgresRecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	selections, err := json.Marshal(rec.Selections)
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}

	query := `
		INSERT INTO recommendations (id, race_id, narrative, selections, bet_type, stake, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (race_id) DO UPDATE SET
			narrative = EXCLUDED.narrative,
			selections = EXCLUDED.selections,
			bet_type = EXCLUDED.bet_type,
			stake = EXCLUDED.stake,
			updated_at = NOW()
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.RaceID, rec.Narrative, selections, rec.BetType, rec.Stake,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}

	return nil
}

// GetByRaceID retrieves the published recommendation for a race
func (r *PostgresRecommendationRepository) GetByRaceID(ctx context.Context, raceID uuid.UUID) (*models.Recommendation, error) {
	query := `
		SELECT id, race_id, narrative, selections, bet_type, stake, created_at, updated_at
		FROM recommendations
		WHERE race_id = $1
	`

	rec := &models.Recommendation{}
	var selections []byte
	var createdAt, updatedAt time.Time
	err := r.db.GetPool().QueryRow(ctx, query, raceID).Scan(
		&rec.ID, &rec.RaceID, &rec.Narrative, &selections, &rec.BetType, &rec.Stake,
		&createdAt, &updatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	if err := json.Unmarshal(selections, &rec.Selections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selections: %w", err)
	}
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt

	return rec, nil
}
