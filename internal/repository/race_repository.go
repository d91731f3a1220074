package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/turf-advisor/internal/database"
	"github.com/yourusername/turf-advisor/internal/models"
)

const (
	errScanRace    = "failed to scan race: %w"
	errScanEntrant = "failed to scan entrant: %w"

	// Only the most recent starts feed the distance and condition
	// sub-scores.
	performanceHistoryLimit = 10
)

// PostgresRaceRepository implements RaceRepository for PostgreSQL
type PostgresRaceRepository struct {
	db *database.DB
}

// NewPostgresRaceRepository creates a new race repository
func NewPostgresRaceRepository(db *database.DB) RaceRepository {
	return &PostgresRaceRepository{db: db}
}

// ListForDate retrieves all races scheduled on the calendar day of the
// given date, interpreted in the date's own location, with entrants and
// their recent performances embedded.
func (r *PostgresRaceRepository) ListForDate(ctx context.Context, date time.Time) ([]*models.Race, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := `
		SELECT id, hippodrome, meeting_number, race_number, date, start_time, discipline,
		       distance, prize_money, bet_types, track_condition, weather_condition,
		       created_at, updated_at
		FROM races
		WHERE date >= $1 AND date < $2
		ORDER BY start_time ASC NULLS LAST, meeting_number ASC, race_number ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query races for date: %w", err)
	}
	defer rows.Close()

	var races []*models.Race
	for rows.Next() {
		race := &models.Race{}
		err := rows.Scan(
			&race.ID, &race.Hippodrome, &race.MeetingNumber, &race.RaceNumber, &race.Date,
			&race.StartTime, &race.Discipline, &race.Distance, &race.PrizeMoney, &race.BetTypes,
			&race.TrackCondition, &race.WeatherCondition, &race.CreatedAt, &race.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRace, err)
		}
		races = append(races, race)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, race := range races {
		entrants, err := r.loadEntrants(ctx, race.ID)
		if err != nil {
			return nil, err
		}
		race.Entrants = entrants
	}

	return races, nil
}

// loadEntrants fetches the entrants of a race along with their last
// performances.
func (r *PostgresRaceRepository) loadEntrants(ctx context.Context, raceID uuid.UUID) ([]models.Entrant, error) {
	query := `
		SELECT number, name, jockey, trainer, recent_form, age, weight,
		       career_starts, career_wins, total_earnings, odds
		FROM entrants
		WHERE race_id = $1
		ORDER BY number ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entrants: %w", err)
	}
	defer rows.Close()

	var entrants []models.Entrant
	for rows.Next() {
		var e models.Entrant
		err := rows.Scan(
			&e.Number, &e.Name, &e.Jockey, &e.Trainer, &e.RecentForm, &e.Age, &e.Weight,
			&e.CareerStarts, &e.CareerWins, &e.TotalEarnings, &e.Odds,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanEntrant, err)
		}
		entrants = append(entrants, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entrants {
		perfs, err := r.loadPerformances(ctx, raceID, entrants[i].Number)
		if err != nil {
			return nil, err
		}
		entrants[i].Performances = perfs
	}

	return entrants, nil
}

func (r *PostgresRaceRepository) loadPerformances(ctx context.Context, raceID uuid.UUID, number int) ([]models.HistoricalPerformance, error) {
	query := `
		SELECT date, finish_position, distance, track_condition, metadata
		FROM entrant_performances
		WHERE race_id = $1 AND entrant_number = $2
		ORDER BY date DESC
		LIMIT $3
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID, number, performanceHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query performances: %w", err)
	}
	defer rows.Close()

	var perfs []models.HistoricalPerformance
	for rows.Next() {
		var p models.HistoricalPerformance
		if err := rows.Scan(&p.Date, &p.FinishPosition, &p.Distance, &p.TrackCondition, &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}
		perfs = append(perfs, p)
	}

	return perfs, rows.Err()
}
