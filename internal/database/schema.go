package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the engine's tables when they do not exist.
// Production deployments run migrations separately; this bootstrap
// covers development and test databases.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS races (
		id UUID PRIMARY KEY,
		hippodrome TEXT NOT NULL,
		meeting_number INT NOT NULL DEFAULT 0,
		race_number INT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		start_time TIMESTAMPTZ,
		discipline TEXT NOT NULL DEFAULT '',
		distance INT NOT NULL DEFAULT 0,
		prize_money DOUBLE PRECISION NOT NULL DEFAULT 0,
		bet_types TEXT[] NOT NULL DEFAULT '{}',
		track_condition TEXT NOT NULL DEFAULT '',
		weather_condition TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_races_date ON races (date)`,
	`CREATE TABLE IF NOT EXISTS entrants (
		race_id UUID NOT NULL REFERENCES races(id) ON DELETE CASCADE,
		number INT NOT NULL,
		name TEXT NOT NULL,
		jockey TEXT,
		trainer TEXT,
		recent_form TEXT NOT NULL DEFAULT '',
		age INT NOT NULL DEFAULT 0,
		weight DOUBLE PRECISION NOT NULL DEFAULT 0,
		career_starts INT NOT NULL DEFAULT 0,
		career_wins INT NOT NULL DEFAULT 0,
		total_earnings DOUBLE PRECISION NOT NULL DEFAULT 0,
		odds DOUBLE PRECISION,
		PRIMARY KEY (race_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS entrant_performances (
		race_id UUID NOT NULL,
		entrant_number INT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		finish_position INT NOT NULL,
		distance INT NOT NULL DEFAULT 0,
		track_condition TEXT NOT NULL DEFAULT '',
		metadata JSONB,
		FOREIGN KEY (race_id, entrant_number) REFERENCES entrants(race_id, number) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entrant_performances_lookup
		ON entrant_performances (race_id, entrant_number, date DESC)`,
	`CREATE TABLE IF NOT EXISTS connection_performances (
		connection_name TEXT NOT NULL,
		race_date TIMESTAMPTZ NOT NULL,
		finish_position INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_connection_performances_lookup
		ON connection_performances (connection_name, race_date DESC)`,
	`CREATE TABLE IF NOT EXISTS weather_cache (
		location_key TEXT PRIMARY KEY,
		temperature DOUBLE PRECISION NOT NULL DEFAULT 0,
		humidity INT NOT NULL DEFAULT 0,
		wind_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		precipitation DOUBLE PRECISION NOT NULL DEFAULT 0,
		condition TEXT NOT NULL DEFAULT 'unknown',
		description TEXT NOT NULL DEFAULT '',
		captured_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id UUID PRIMARY KEY,
		race_id UUID NOT NULL UNIQUE REFERENCES races(id) ON DELETE CASCADE,
		narrative TEXT NOT NULL DEFAULT '',
		selections JSONB NOT NULL DEFAULT '[]',
		bet_type TEXT NOT NULL DEFAULT '',
		stake TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates any missing tables and indexes.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
