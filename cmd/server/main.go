package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/config"
	"github.com/mchuang3/dentms/internal/repository/mongodb"
	"github.com/mchuang3/dentms/internal/repository/sheets"
	"github.com/mchuang3/dentms/internal/scheduler"
	"github.com/mchuang3/dentms/internal/server/handlers"
	"github.com/mchuang3/dentms/internal/server/router"
	bonussvc "github.com/mchuang3/dentms/internal/service/bonus"
	exportsvc "github.com/mchuang3/dentms/internal/service/export"
	ledgersvc "github.com/mchuang3/dentms/internal/service/ledger"
	revenuesvc "github.com/mchuang3/dentms/internal/service/revenue"
	salarysvc "github.com/mchuang3/dentms/internal/service/salary"
	"github.com/mchuang3/dentms/pkg/clients/notify"
	"github.com/mchuang3/dentms/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	var notifier notify.Sender = notify.Nop{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("webhook notifier enabled")
	}

	revenueSvc := revenuesvc.NewService(repo, baseLogger.Named("svc.revenue"))
	bonusSvc := bonussvc.NewService(revenueSvc, repo, repo, baseLogger.Named("svc.bonus"))
	salarySvc := salarysvc.NewService(revenueSvc, repo, repo, repo, repo, baseLogger.Named("svc.salary"))
	ledgerSvc := ledgersvc.NewService(repo, repo, notifier, baseLogger.Named("svc.ledger"))

	var exporter handlers.ReportExporter
	if cfg.SheetsEnabled() {
		sheetWriter, err := sheets.NewGoogleSheetWriter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets writer", zap.Error(err))
		}
		exporter = exportsvc.NewService(sheetWriter, baseLogger.Named("svc.export"))
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("spreadsheet export not configured, export endpoints disabled")
	}

	engineHandler := handlers.NewEngineHandler(bonusSvc, salarySvc, exporter, baseLogger.Named("handlers.engine"))
	ledgerHandler := handlers.NewLedgerHandler(ledgerSvc, baseLogger.Named("handlers.ledger"))
	settingsHandler := handlers.NewSettingsHandler(repo, repo, baseLogger.Named("handlers.settings"))
	engine := router.New(engineHandler, ledgerHandler, settingsHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Snapshot, bonusSvc, salarySvc, repo, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
