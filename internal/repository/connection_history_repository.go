package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/turf-advisor/internal/database"
)

// PostgresConnectionHistoryRepository implements
// ConnectionHistoryRepository for PostgreSQL. Jockeys and trainers
// share the same table; the lookup is by name only.
type PostgresConnectionHistoryRepository struct {
	db *database.DB
}

// NewPostgresConnectionHistoryRepository creates a new connection history repository
func NewPostgresConnectionHistoryRepository(db *database.DB) ConnectionHistoryRepository {
	return &PostgresConnectionHistoryRepository{db: db}
}

// ListFinishPositions returns the finishing positions of every start
// the named connection had since the given date, most recent first.
func (r *PostgresConnectionHistoryRepository) ListFinishPositions(ctx context.Context, name string, since time.Time) ([]int, error) {
	query := `
		SELECT finish_position
		FROM connection_performances
		WHERE connection_name = $1 AND race_date >= $2
		ORDER BY race_date DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, name, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query connection history: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("failed to scan finish position: %w", err)
		}
		positions = append(positions, pos)
	}

	return positions, rows.Err()
}
