// Package batch drives the daily analysis run: fetch, weather, analyze,
// gate, persist.
package batch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/config"
	"github.com/yourusername/turf-advisor/internal/metrics"
	"github.com/yourusername/turf-advisor/internal/models"
	"github.com/yourusername/turf-advisor/internal/repository"
	"github.com/yourusername/turf-advisor/internal/scoring"
)

// WeatherProvider supplies a per-hippodrome weather signal. A nil
// observation means "no signal" and is never an error.
type WeatherProvider interface {
	SignalFor(ctx context.Context, hippodrome string) *models.WeatherObservation
}

// Renderer produces the narrative text for an accepted race.
type Renderer interface {
	Render(ctx context.Context, race *models.Race, analysis *models.RaceAnalysis) string
}

// Result summarizes one batch run. These aggregate counts are the only
// thing surfaced to the scheduler.
type Result struct {
	Analyzed int `json:"analyzed"`
	Accepted int `json:"accepted"`
	Errors   int `json:"errors"`
}

// analyzedRace pairs a race with its analysis and quality score through
// the rank/gate/persist steps.
type analyzedRace struct {
	race     *models.Race
	analysis *models.RaceAnalysis
	quality  models.QualityScore
}

// Orchestrator coordinates one daily batch run. It is not re-entrant;
// the scheduler guarantees a single run at a time.
type Orchestrator struct {
	raceRepo repository.RaceRepository
	recRepo  repository.RecommendationRepository
	weather  WeatherProvider
	analyzer *scoring.Analyzer
	gate     *scoring.QualityGate
	renderer Renderer
	cfg      config.BatchConfig
	logger   *logrus.Logger
}

// NewOrchestrator creates a new batch orchestrator
func NewOrchestrator(
	raceRepo repository.RaceRepository,
	recRepo repository.RecommendationRepository,
	weather WeatherProvider,
	analyzer *scoring.Analyzer,
	gate *scoring.QualityGate,
	renderer Renderer,
	cfg config.BatchConfig,
	logger *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		raceRepo: raceRepo,
		recRepo:  recRepo,
		weather:  weather,
		analyzer: analyzer,
		gate:     gate,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// RunDailyBatch analyzes every race of the given calendar day and
// publishes recommendations for the races that pass the quality gate.
// It never fails the run: all errors are recovered locally and only
// counted in the result.
func (o *Orchestrator) RunDailyBatch(ctx context.Context, date time.Time) Result {
	start := time.Now()
	result := Result{}

	o.logger.WithField("date", date.Format("2006-01-02")).Info("Daily batch started")

	races, err := o.raceRepo.ListForDate(ctx, date)
	if err != nil {
		o.logger.WithError(err).Error("Failed to load races for date")
		result.Errors++
		return result
	}
	if len(races) == 0 {
		o.logger.Info("No races scheduled for date")
		return result
	}

	o.collectWeather(ctx, races)

	analyzed := o.analyzeRaces(ctx, races, &result)

	// Rank by quality before gating so the accepted set is ordered by
	// publish-worthiness.
	sort.SliceStable(analyzed, func(i, j int) bool {
		return analyzed[i].quality.Score > analyzed[j].quality.Score
	})

	for _, ar := range analyzed {
		if ar.quality.Score < o.cfg.QualityThreshold {
			continue
		}
		if err := o.publish(ctx, ar); err != nil {
			o.logger.WithError(err).WithField("race", ar.race.Label()).Error("Failed to persist recommendation")
			metrics.RaceErrorsTotal.Inc()
			result.Errors++
			continue
		}
		metrics.RacesAcceptedTotal.Inc()
		result.Accepted++
	}

	metrics.BatchDurationSeconds.Set(time.Since(start).Seconds())

	o.logger.WithFields(logrus.Fields{
		"analyzed": result.Analyzed,
		"accepted": result.Accepted,
		"errors":   result.Errors,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("Daily batch finished")

	return result
}

// collectWeather fans out one concurrent signal request per race that
// has a start time and waits for all of them to settle. Failures are
// non-fatal; the race simply analyzes without a weather signal.
func (o *Orchestrator) collectWeather(ctx context.Context, races []*models.Race) {
	var wg sync.WaitGroup
	for _, race := range races {
		if race.StartTime == nil {
			continue
		}
		wg.Add(1)
		go func(r *models.Race) {
			defer wg.Done()
			if obs := o.weather.SignalFor(ctx, r.Hippodrome); obs != nil {
				r.WeatherCondition = string(obs.Condition)
			}
		}(race)
	}
	wg.Wait()
}

// analyzeRaces runs the analyzer sequentially with a small delay
// between races to bound load on the connection-history lookups.
func (o *Orchestrator) analyzeRaces(ctx context.Context, races []*models.Race, result *Result) []analyzedRace {
	analyzed := make([]analyzedRace, 0, len(races))

	for i, race := range races {
		// Stop starting new races once cancellation is requested.
		if ctx.Err() != nil {
			o.logger.Warn("Batch cancelled, skipping remaining races")
			break
		}

		analysis, err := o.analyzer.Analyze(ctx, race)
		if err != nil {
			o.logger.WithError(err).WithField("race", race.Label()).Warn("Race analysis failed")
			metrics.RaceErrorsTotal.Inc()
			result.Errors++
			continue
		}

		quality := o.gate.Score(race, analysis)
		metrics.QualityScores.Observe(quality.Score)
		metrics.RacesAnalyzedTotal.Inc()
		result.Analyzed++

		analyzed = append(analyzed, analyzedRace{race: race, analysis: analysis, quality: quality})

		if i < len(races)-1 && o.cfg.InterRaceDelay() > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(o.cfg.InterRaceDelay()):
			}
		}
	}

	return analyzed
}

// publish renders the narrative and upserts the recommendation for one
// accepted race.
func (o *Orchestrator) publish(ctx context.Context, ar analyzedRace) error {
	narrative := o.renderer.Render(ctx, ar.race, ar.analysis)
	rec := buildRecommendation(ar.race, ar.analysis, narrative)

	if err := o.recRepo.Upsert(ctx, rec); err != nil {
		return err
	}

	o.logger.WithFields(logrus.Fields{
		"race":    ar.race.Label(),
		"quality": ar.quality.Score,
		"picks":   rec.BetType,
	}).Info("Recommendation published")

	return nil
}
