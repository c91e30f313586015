// Package main provides the entry point for the Diamond Edge API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/scheduler"
	"github.com/yourusername/diamond-edge/internal/server"
	"github.com/yourusername/diamond-edge/internal/service"
	"github.com/yourusername/diamond-edge/internal/stats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to configuration file")
		skipDB     = flag.Bool("no-db", false, "Run without persistence (picks are served from memory only)")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Diamond Edge starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistence
	var (
		db    *database.DB
		repos *repository.Repositories
	)
	if !*skipDB {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to run migrations")
		}
		repos = repository.NewRepositories(db)
		appLog.Info("Database connection established")
	} else {
		appLog.Warn("Running without persistence")
	}

	// Upstream feeds
	feedLog := log.New(os.Stdout, "feeds: ", log.LstdFlags)
	scoreboardClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.Scoreboard.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.Scoreboard.MaxRetries,
		RetryWaitMin:      time.Second,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.Scoreboard.RateLimit,
		CircuitBreakerMax: 5,
	}, feedLog)
	defer scoreboardClient.Close()

	oddsClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.OddsAPI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.OddsAPI.MaxRetries,
		RetryWaitMin:      time.Second,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.OddsAPI.RateLimit,
		CircuitBreakerMax: 5,
	}, feedLog)
	defer oddsClient.Close()

	scoreboard := datasource.NewESPNScoreboard(cfg.Scoreboard.BaseURL, scoreboardClient)
	oddsFeed := datasource.NewTheOddsAPI(cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey,
		cfg.OddsAPI.SportKey, cfg.OddsAPI.Regions, oddsClient)

	var weather datasource.WeatherSource
	if cfg.Weather.APIKey != "" {
		weatherClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), feedLog)
		defer weatherClient.Close()
		weather = datasource.NewOpenWeather(cfg.Weather.BaseURL, cfg.Weather.APIKey, weatherClient)
		appLog.Info("Weather adjustments enabled")
	}

	// Services
	statsCache := stats.NewCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	hub := server.NewHub(appLog)
	go hub.Run(ctx)

	builder := service.NewSlateBuilder(statsCache, weather, appLog)
	picksGen := service.NewPicksGenerator(scoreboard, oddsFeed, builder, repos, hub, appLog)
	propsGen := service.NewPropsGenerator(scoreboard, oddsFeed, statsCache, repos, hub, appLog)

	// Scheduler
	if cfg.Scheduler.Enabled {
		schedLog := log.New(os.Stdout, "scheduler: ", log.LstdFlags)
		sched := scheduler.NewScheduler(picksGen, propsGen,
			time.Duration(cfg.Scheduler.TimeoutHours)*time.Hour, schedLog)
		if err := sched.SchedulePicks(cfg.Scheduler.PicksCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule pick generation")
		}
		if err := sched.ScheduleProps(cfg.Scheduler.PropsCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule prop ranking")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer sched.Stop()
		appLog.WithField("next_run", sched.GetNextRun()).Info("Scheduler started")
	}

	// API server
	var pinger server.DatabasePinger
	if db != nil {
		pinger = db
	}
	apiServer := server.NewServer(server.Config{
		ServiceName:    cfg.App.Name,
		Version:        Version,
		Commit:         GitCommit,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         appLog,
		DB:             pinger,
		Repos:          repos,
		Scoreboard:     scoreboard,
		Picks:          picksGen,
		Props:          propsGen,
		Hub:            hub,
	})
	if err := apiServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start API server")
	}
	apiServer.SetReady(true)

	appLog.WithField("port", cfg.Server.Port).Info("Diamond Edge is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	apiServer.SetReady(false)
	cancel()
	if err := apiServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}

	// Give components time to cleanup
	time.Sleep(time.Second)
	appLog.Info("Diamond Edge shut down successfully")
}
