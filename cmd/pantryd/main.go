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
	"github.com/shopspring/decimal"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/export"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/inventory"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/markets"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/scan"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; real deployments set env vars directly.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("migrating database", "error", err)
		os.Exit(1)
	}

	receiptsRepo := repository.NewReceiptRepository(db, logger)
	historyRepo := repository.NewHistoryRepository(db, logger)
	inventoryRepo := repository.NewInventoryRepository(db, logger)

	scanSvc := scan.NewService(logger, scan.Config{
		MinOCRConfidence:  cfg.Scan.MinOCRConfidence,
		SimilarTotalDelta: decimal.NewFromFloat(cfg.Scan.SimilarTotalDelta),
	}, receiptsRepo, historyRepo)
	inventorySvc := inventory.NewService(logger, receiptsRepo, inventoryRepo, historyRepo)
	marketsSvc := markets.NewService(logger, historyRepo)
	exportSvc := export.NewService(marketsSvc, logger)

	srv := server.New(logger, db, scanSvc, inventorySvc, marketsSvc, exportSvc)
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}
