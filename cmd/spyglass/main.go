package main

import (
	"database/sql"

	_ "github.com/lib/pq"

	"spyglass/internal/archive"
	"spyglass/internal/handlers"
	"spyglass/internal/metrics"
	"spyglass/pkg/config"
	"spyglass/pkg/logging"
	"spyglass/pkg/monitoring"
	"spyglass/pkg/server"
	"spyglass/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("spyglass")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Spyglass (Feed Analytics API)")

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("spyglass", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("spyglass", version.Version, version.GitCommit)

	// PostgreSQL report archive is optional; the analysis pipeline itself
	// holds no state.
	var reportArchive *archive.Archive
	if dbURL := config.GetEnv("DATABASE_URL", ""); dbURL != "" {
		db, err := sql.Open("postgres", dbURL)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open report archive database")
		}
		defer func() { _ = db.Close() }()

		reportArchive = archive.New(db, logger)
		healthChecker.AddCheck("postgres", monitoring.DatabaseHealthCheck(db))
		logger.Info("Report archive enabled")
	} else {
		logger.Info("DATABASE_URL not set, report archive disabled")
	}

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"LOG_LEVEL": config.GetEnv("LOG_LEVEL", "info"),
	}))

	// Create custom feed analytics metrics
	serviceMetrics := &metrics.Metrics{
		FeedAnalyses:      metricsCollector.NewCounter("feed_analyses_total", "Feed analyses executed", []string{"status"}),
		AnalysisDuration:  metricsCollector.NewHistogram("feed_analysis_duration_seconds", "Feed analysis duration", []string{"operation"}, nil),
		MessagesProcessed: metricsCollector.NewCounter("feed_messages_processed_total", "Messages accepted into analysis", nil),
		AnomalyFlags:      metricsCollector.NewCounter("feed_anomaly_flags_total", "Anomaly detector hits", []string{"detector"}),
		ArchiveWrites:     metricsCollector.NewCounter("feed_archive_writes_total", "Report archive writes", []string{"status"}),
	}

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "spyglass", healthChecker, metricsCollector)

	handlers.Init(logger, serviceMetrics, reportArchive)
	router.POST("/analyze-feed", handlers.AnalyzeFeed)

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("spyglass", "18010")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
