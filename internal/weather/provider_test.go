package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/turf-advisor/internal/models"
)

// stubSource implements Source with a canned response and a call count.
type stubSource struct {
	obs   *models.WeatherObservation
	err   error
	calls int
}

func (s *stubSource) FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherObservation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.obs, nil
}

func newTestProvider(source *stubSource, ceiling int) *Provider {
	cache := NewSignalCache(nil, 3*time.Hour, testLogger())
	budget := NewCallBudget(ceiling, time.UTC)
	return NewProvider(source, cache, budget, testLogger())
}

func TestSignalForUnknownHippodrome(t *testing.T) {
	source := &stubSource{}
	p := newTestProvider(source, 10)

	assert.Nil(t, p.SignalFor(context.Background(), "Churchill Downs"))
	assert.Equal(t, 0, source.calls)
	assert.Equal(t, 10, p.BudgetRemaining())
}

func TestSignalForFetchesAndCaches(t *testing.T) {
	source := &stubSource{
		obs: &models.WeatherObservation{
			Temperature: 8.2,
			Condition:   models.WeatherRain,
			CapturedAt:  time.Now(),
		},
	}
	p := newTestProvider(source, 10)
	ctx := context.Background()

	obs := p.SignalFor(ctx, "Vincennes")
	require.NotNil(t, obs)
	assert.Equal(t, "VINCENNES", obs.LocationKey)
	assert.Equal(t, models.WeatherRain, obs.Condition)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 9, p.BudgetRemaining())
}

func TestSignalForServedFromCache(t *testing.T) {
	source := &stubSource{
		obs: &models.WeatherObservation{
			Condition:  models.WeatherClear,
			CapturedAt: time.Now(),
		},
	}
	p := newTestProvider(source, 10)
	ctx := context.Background()

	first := p.SignalFor(ctx, "Vincennes")
	require.NotNil(t, first)

	// A fresh cached signal never spends quota.
	second := p.SignalFor(ctx, "Vincennes")
	require.NotNil(t, second)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 9, p.BudgetRemaining())
}

func TestSignalForBudgetExhausted(t *testing.T) {
	source := &stubSource{
		obs: &models.WeatherObservation{Condition: models.WeatherClear, CapturedAt: time.Now()},
	}
	p := newTestProvider(source, 0)

	assert.Nil(t, p.SignalFor(context.Background(), "Vincennes"))
	assert.Equal(t, 0, source.calls)
}

func TestSignalForSourceFailureReleasesBudget(t *testing.T) {
	source := &stubSource{err: assert.AnError}
	p := newTestProvider(source, 5)

	assert.Nil(t, p.SignalFor(context.Background(), "Vincennes"))
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 5, p.BudgetRemaining())
}

func TestResolveCoordinates(t *testing.T) {
	tests := []struct {
		name        string
		hippodrome  string
		expectedKey string
		found       bool
	}{
		{"exact match", "VINCENNES", "VINCENNES", true},
		{"case folded", "Vincennes", "VINCENNES", true},
		{"diacritics stripped", "Compiègne", "COMPIEGNE", true},
		{"prefix of known venue", "HIPPODROME DE VINCENNES", "VINCENNES", true},
		{"trailing whitespace", "  Chantilly ", "CHANTILLY", true},
		{"unknown venue", "Churchill Downs", "", false},
		{"empty name", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, key, ok := ResolveCoordinates(tt.hippodrome)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expectedKey, key)
			if tt.found {
				assert.NotZero(t, coords.Lat)
			}
		})
	}
}

func TestResolveCoordinatesAmbiguousNameIsStable(t *testing.T) {
	// "Marseille" matches both Borely and Vivaux; the fallback walks
	// the known venues in lexical order, so Borely always wins.
	for i := 0; i < 50; i++ {
		_, key, ok := ResolveCoordinates("Marseille")
		assert.True(t, ok)
		assert.Equal(t, "MARSEILLE BORELY", key)
	}
}

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		raw      string
		expected models.WeatherCondition
	}{
		{"Clear", models.WeatherClear},
		{"clouds", models.WeatherClouds},
		{"overcast", models.WeatherClouds},
		{"Rain", models.WeatherRain},
		{"drizzle", models.WeatherDrizzle},
		{"Thunderstorm", models.WeatherStorm},
		{"snow", models.WeatherSnow},
		{"Mist", models.WeatherFog},
		{"tornado", models.WeatherVariable},
		{"", models.WeatherVariable},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCondition(tt.raw))
		})
	}
}
