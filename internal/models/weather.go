package models

import "time"

// WeatherCondition is the canonical condition taxonomy used by the
// scorer and the narrative renderer.
type WeatherCondition string

// Canonical weather conditions.
const (
	WeatherClear    WeatherCondition = "clear"
	WeatherClouds   WeatherCondition = "clouds"
	WeatherRain     WeatherCondition = "rain"
	WeatherDrizzle  WeatherCondition = "drizzle"
	WeatherStorm    WeatherCondition = "storm"
	WeatherSnow     WeatherCondition = "snow"
	WeatherFog      WeatherCondition = "fog"
	WeatherVariable WeatherCondition = "unknown"
)

// WeatherObservation is one normalized observation for a location.
// The same value lives in the process-memory cache tier and, as the
// source of truth across restarts, in the persistent tier.
type WeatherObservation struct {
	LocationKey   string           `db:"location_key" json:"location_key"`
	Temperature   float64          `db:"temperature" json:"temperature"`
	Humidity      int              `db:"humidity" json:"humidity"`
	WindSpeed     float64          `db:"wind_speed" json:"wind_speed"`
	Precipitation float64          `db:"precipitation" json:"precipitation"`
	Condition     WeatherCondition `db:"condition" json:"condition"`
	Description   string           `db:"description" json:"description"`
	CapturedAt    time.Time        `db:"captured_at" json:"captured_at"`
}

// IsFresh reports whether the observation is still inside the
// freshness window at the given instant.
func (o *WeatherObservation) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(o.CapturedAt) < window
}
