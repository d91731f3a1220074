package weather

import (
	"strings"

	"github.com/yourusername/turf-advisor/internal/models"
)

// conditionMap translates the raw condition labels of the external
// source into the canonical taxonomy.
var conditionMap = map[string]models.WeatherCondition{
	"clear":        models.WeatherClear,
	"sunny":        models.WeatherClear,
	"clouds":       models.WeatherClouds,
	"cloudy":       models.WeatherClouds,
	"overcast":     models.WeatherClouds,
	"rain":         models.WeatherRain,
	"shower rain":  models.WeatherRain,
	"drizzle":      models.WeatherDrizzle,
	"thunderstorm": models.WeatherStorm,
	"storm":        models.WeatherStorm,
	"snow":         models.WeatherSnow,
	"sleet":        models.WeatherSnow,
	"fog":          models.WeatherFog,
	"mist":         models.WeatherFog,
	"haze":         models.WeatherFog,
}

// NormalizeCondition maps a raw provider condition label onto the
// canonical taxonomy, defaulting to unknown/variable.
func NormalizeCondition(raw string) models.WeatherCondition {
	if c, ok := conditionMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return models.WeatherVariable
}
