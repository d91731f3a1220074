// Package weather resolves per-hippodrome weather signals through a
// two-tier cache and a budget-capped external source.
package weather

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/metrics"
	"github.com/yourusername/turf-advisor/internal/models"
)

// Provider answers "what is the weather at this hippodrome right now",
// consulting the cache tiers before spending quota on the external
// source. All failure modes degrade to a nil signal; the provider never
// returns an error to the batch.
type Provider struct {
	source Source
	cache  *SignalCache
	budget *CallBudget
	logger *logrus.Logger
}

// NewProvider creates a new weather signal provider
func NewProvider(source Source, cache *SignalCache, budget *CallBudget, logger *logrus.Logger) *Provider {
	return &Provider{
		source: source,
		cache:  cache,
		budget: budget,
		logger: logger,
	}
}

// SignalFor returns the freshest observation for a hippodrome, or nil
// when no signal can be produced (unknown venue, exhausted budget, or
// source failure).
func (p *Provider) SignalFor(ctx context.Context, hippodrome string) *models.WeatherObservation {
	coords, key, ok := ResolveCoordinates(hippodrome)
	if !ok {
		p.logger.WithField("hippodrome", hippodrome).Debug("Hippodrome location unresolved, no weather signal")
		return nil
	}

	if obs := p.cache.Get(ctx, key); obs != nil {
		return obs
	}

	if !p.budget.TryAcquire() {
		p.logger.WithFields(logrus.Fields{
			"hippodrome": hippodrome,
			"location":   key,
		}).Warn("Daily weather call budget exhausted, no signal")
		return nil
	}

	obs, err := p.source.FetchCurrent(ctx, coords.Lat, coords.Lon)
	if err != nil {
		p.budget.Release()
		p.logger.WithError(err).WithField("location", key).Warn("Weather source call failed, no signal")
		return nil
	}

	metrics.WeatherCallsTotal.Inc()
	obs.LocationKey = key
	p.cache.Put(ctx, obs)

	p.logger.WithFields(logrus.Fields{
		"location":  key,
		"condition": obs.Condition,
		"remaining": p.budget.Remaining(),
	}).Debug("Weather signal fetched")

	return obs
}

// BudgetRemaining exposes the remaining daily quota, mainly for status
// reporting.
func (p *Provider) BudgetRemaining() int {
	return p.budget.Remaining()
}
