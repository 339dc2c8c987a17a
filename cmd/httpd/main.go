// Command httpd runs the FIR extraction HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dharma-project/fir-extractor/internal/api"
	"github.com/dharma-project/fir-extractor/internal/config"
	"github.com/dharma-project/fir-extractor/internal/extract"
	"github.com/dharma-project/fir-extractor/internal/logger"
	"github.com/dharma-project/fir-extractor/internal/processor"
	"github.com/dharma-project/fir-extractor/internal/storage"
	"github.com/dharma-project/fir-extractor/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer log.Sync()

	log.Info("starting fir extraction service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port))

	tp := telemetry.NewProvider()

	store, err := storage.New(storage.Config{
		Driver:         cfg.Storage.Driver,
		Path:           cfg.Storage.Path,
		Host:           cfg.Storage.Host,
		Port:           cfg.Storage.Port,
		User:           cfg.Storage.User,
		Password:       cfg.Storage.Password,
		Database:       cfg.Storage.Database,
		SSLMode:        cfg.Storage.SSLMode,
		MaxConnections: cfg.Storage.MaxConnections,
		MaxIdleConns:   cfg.Storage.MaxIdleConns,
	}, log)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	extractor := extract.New(log, tp, extract.Config{
		WitnessHeuristic: cfg.Extraction.WitnessHeuristicEnabled(),
	})

	limiter := processor.NewRateLimiter(cfg.Service.RateLimitRPS, 0, log)
	batch := processor.NewBatchExtractor(extractor, limiter, cfg.Service.Concurrency, log, tp)

	handlers := api.NewHandlers(extractor, batch, store, tp, log, cfg.Service.BatchLimit)
	server := api.NewServer(cfg.Service, handlers, tp, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("service stopped")
	return nil
}
