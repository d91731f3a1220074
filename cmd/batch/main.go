// Package main provides the entry point for the daily recommendation batch.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/turf-advisor/internal/batch"
	"github.com/yourusername/turf-advisor/internal/config"
	"github.com/yourusername/turf-advisor/internal/database"
	"github.com/yourusername/turf-advisor/internal/health"
	"github.com/yourusername/turf-advisor/internal/httpclient"
	"github.com/yourusername/turf-advisor/internal/logger"
	"github.com/yourusername/turf-advisor/internal/narrative"
	"github.com/yourusername/turf-advisor/internal/repository"
	"github.com/yourusername/turf-advisor/internal/scheduler"
	"github.com/yourusername/turf-advisor/internal/scoring"
	"github.com/yourusername/turf-advisor/internal/weather"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	dateFlag   string
	daemonMode bool

	cfg    *config.Config
	appLog *logrus.Logger
	db     *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Run a single batch for this date (YYYY-MM-DD) and exit")
	rootCmd.Flags().BoolVar(&daemonMode, "daemon", false, "Run as a daemon with the scheduled daily batch")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "turf-advisor",
	Short: "Daily horse-racing recommendation batch",
	Long: `Analyzes the day's race programme, scores every entrant, gates the
races worth publishing, and persists recommendations with a narrative.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer teardown()

		if daemonMode {
			return runDaemon()
		}
		return runOnce()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("turf-advisor %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error

	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Overlay secrets from AWS when running in a managed environment
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Turf Advisor starting")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	appLog.Info("Database connection established")

	// Production schemas are managed by migrations run at deploy time.
	if cfg.IsDevelopment() {
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
	}

	return nil
}

func teardown() {
	if db != nil {
		db.Close()
	}
}

// buildOrchestrator wires the repositories, weather pipeline, scoring
// stack, and narrative renderer into one batch orchestrator.
func buildOrchestrator() *batch.Orchestrator {
	raceRepo := repository.NewPostgresRaceRepository(db)
	historyRepo := repository.NewPostgresConnectionHistoryRepository(db)
	recRepo := repository.NewPostgresRecommendationRepository(db)
	weatherRepo := repository.NewPostgresWeatherCacheRepository(db)

	httpLogger := log.New(os.Stdout, "http: ", log.LstdFlags)

	weatherHTTP := httpclient.New(httpclient.DefaultConfig(), httpLogger)
	source := weather.NewOWMClient(weatherHTTP, cfg.Weather.APIURL, cfg.Weather.APIKey, cfg.Weather.Timeout())
	cache := weather.NewSignalCache(weatherRepo, cfg.Weather.CacheTTL(), appLog)
	budget := weather.NewCallBudget(cfg.Weather.DailyCallCeiling, cfg.Location())
	provider := weather.NewProvider(source, cache, budget, appLog)

	scorer := scoring.NewScorer(historyRepo, appLog)
	analyzer := scoring.NewAnalyzer(scorer, appLog)
	gate := scoring.NewQualityGate(appLog)

	var completer narrative.Completer
	if cfg.Narrative.Enabled {
		narrativeHTTP := httpclient.New(httpclient.DefaultConfig(), httpLogger)
		completer = narrative.NewCompletionClient(
			narrativeHTTP, cfg.Narrative.APIURL, cfg.Narrative.APIKey,
			cfg.Narrative.Model, cfg.Narrative.Timeout(),
		)
	}
	renderer := narrative.NewRenderer(completer, cfg.Narrative.Enabled, appLog)

	return batch.NewOrchestrator(raceRepo, recRepo, provider, analyzer, gate, renderer, cfg.Batch, appLog)
}

// runOnce executes a single batch for the requested date (today in the
// operator timezone when omitted) and exits.
func runOnce() error {
	date := time.Now().In(cfg.Location())
	if dateFlag != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateFlag, cfg.Location())
		if err != nil {
			return fmt.Errorf("invalid --date value %q: %w", dateFlag, err)
		}
		date = parsed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	orchestrator := buildOrchestrator()
	result := orchestrator.RunDailyBatch(ctx, date)

	appLog.WithFields(logrus.Fields{
		"date":     date.Format("2006-01-02"),
		"analyzed": result.Analyzed,
		"accepted": result.Accepted,
		"errors":   result.Errors,
	}).Info("Batch run complete")

	return nil
}

// runDaemon schedules the daily batch and serves health and metrics
// endpoints until a shutdown signal arrives.
func runDaemon() error {
	orchestrator := buildOrchestrator()

	sched := scheduler.NewScheduler(orchestrator, cfg.Location(), appLog)
	if err := sched.ScheduleDailyBatch(cfg.Batch.Schedule); err != nil {
		return fmt.Errorf("failed to schedule daily batch: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
		Logger:      appLog,
		DB:          db,
		Scheduler:   sched,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"schedule": cfg.Batch.Schedule,
		"timezone": cfg.App.Timezone,
		"next_run": sched.NextRun().Format(time.RFC3339),
	}).Info("Daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	appLog.Info("Turf Advisor shut down")
	return nil
}
