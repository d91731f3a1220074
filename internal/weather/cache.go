package weather

import (
	"context"
	"errors"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/metrics"
	"github.com/yourusername/turf-advisor/internal/models"
	"github.com/yourusername/turf-advisor/internal/repository"
)

// SignalCache is the two-tier weather observation cache. The memory
// tier answers within the process; the persistent tier survives
// restarts and backfills the memory tier on hit. Both tiers honor the
// same freshness window.
type SignalCache struct {
	mem    *cache.Cache
	store  repository.WeatherCacheRepository
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

// NewSignalCache creates a two-tier cache with the given freshness
// window. store may be nil, in which case only the memory tier is used.
func NewSignalCache(store repository.WeatherCacheRepository, ttl time.Duration, logger *logrus.Logger) *SignalCache {
	return &SignalCache{
		mem:    cache.New(ttl, ttl*2),
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns a fresh observation for the location key, or nil on a
// full miss. A persistent-tier hit is copied back into the memory tier.
func (c *SignalCache) Get(ctx context.Context, locationKey string) *models.WeatherObservation {
	if v, found := c.mem.Get(locationKey); found {
		if obs, ok := v.(*models.WeatherObservation); ok && obs.IsFresh(c.now(), c.ttl) {
			metrics.WeatherCacheHitsTotal.WithLabelValues("memory").Inc()
			return obs
		}
	}

	if c.store != nil {
		obs, err := c.store.Get(ctx, locationKey)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				c.logger.WithError(err).WithField("location", locationKey).Warn("Persistent weather cache lookup failed")
			}
		} else if obs.IsFresh(c.now(), c.ttl) {
			metrics.WeatherCacheHitsTotal.WithLabelValues("persistent").Inc()
			c.backfill(obs)
			return obs
		}
	}

	metrics.WeatherCacheMissesTotal.Inc()
	return nil
}

// Put writes an observation through both tiers.
func (c *SignalCache) Put(ctx context.Context, obs *models.WeatherObservation) {
	c.mem.Set(obs.LocationKey, obs, c.ttl)

	if c.store == nil {
		return
	}
	if err := c.store.Put(ctx, obs); err != nil {
		// Persistent tier failures degrade durability, not correctness
		c.logger.WithError(err).WithField("location", obs.LocationKey).Warn("Failed to persist weather observation")
	}
}

// backfill copies a persistent-tier hit into the memory tier for the
// remainder of its freshness window.
func (c *SignalCache) backfill(obs *models.WeatherObservation) {
	remaining := c.ttl - c.now().Sub(obs.CapturedAt)
	if remaining <= 0 {
		return
	}
	c.mem.Set(obs.LocationKey, obs, remaining)
}

// ItemCount returns the number of entries in the memory tier.
func (c *SignalCache) ItemCount() int {
	return c.mem.ItemCount()
}
