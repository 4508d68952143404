package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/stoik/phishguard/internal/adapters/httpapi"
	"github.com/stoik/phishguard/internal/application"
	"github.com/stoik/phishguard/internal/config"
	"github.com/stoik/phishguard/internal/domain"
	"github.com/stoik/phishguard/internal/domain/detection"
	"github.com/stoik/phishguard/internal/logger"
)

func main() {
	// A missing .env is normal outside local development
	envErr := godotenv.Load()

	cfg, err := config.Load(getEnv("PHISHGUARD_CONFIG", "config.yaml"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log, err := logger.Setup(os.Stdout, cfg.Logging.Level)
	if err != nil {
		log.Warn("invalid log level", slog.Any("error", err))
	}
	if envErr == nil {
		log.Debug("loaded .env file")
	}

	// Reference lists are loaded once and shared read-only by every request
	ruleContext, err := detection.LoadRuleContext(cfg.Rules.ReferenceData)
	if err != nil {
		log.Error("failed to load reference data", slog.Any("error", err))
		os.Exit(1)
	}

	detector := detection.NewDetector(ruleContext)
	log.Debug("rules loaded",
		"url_rules", detector.RuleNames(domain.KindURL),
		"email_rules", detector.RuleNames(domain.KindEmail),
	)
	service := application.NewAnalysisService(detector, log)
	server := httpapi.NewServer(service, cfg.Server, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown handling
	go func() {
		log.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.Int("suspicious_keywords", len(ruleContext.SuspiciousKeywords)),
			slog.Int("high_risk_brands", len(ruleContext.HighRiskBrands)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", slog.Any("error", err))
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
