package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/config"
	"github.com/robinoyako/sips/internal/repository/postgres"
	"github.com/robinoyako/sips/internal/scheduler"
	"github.com/robinoyako/sips/internal/server/handlers"
	"github.com/robinoyako/sips/internal/server/router"
	authsvc "github.com/robinoyako/sips/internal/service/auth"
	ingestsvc "github.com/robinoyako/sips/internal/service/ingest"
	reportsvc "github.com/robinoyako/sips/internal/service/report"
	resetsvc "github.com/robinoyako/sips/internal/service/reset"
	"github.com/robinoyako/sips/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if err := postgres.Migrate(cfg.Database.DSN); err != nil {
		baseLogger.Fatal("migrations failed", zap.Error(err))
	}
	baseLogger.Info("migrations applied")

	store, err := postgres.Connect(context.Background(), cfg.Database.DSN)
	if err != nil {
		baseLogger.Fatal("failed to init postgres store", zap.Error(err))
	}
	defer store.Close()

	loc, err := time.LoadLocation(cfg.Reset.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reset.Timezone), zap.Error(err))
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authSvc := authsvc.NewService(store, cfg.Session.Secret, sessionTTL, baseLogger.Named("svc.auth"))
	resetSvc := resetsvc.NewService(store, loc, baseLogger.Named("svc.reset"))
	reportSvc := reportsvc.NewService(store, baseLogger.Named("svc.report"))
	ingestSvc := ingestsvc.NewService(store, baseLogger.Named("svc.ingest"))

	if err := authSvc.Bootstrap(context.Background(), cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		baseLogger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, cfg.Session.CookieSecure, baseLogger.Named("handlers.auth")),
		Stock:     handlers.NewStockHandler(store, baseLogger.Named("handlers.stock")),
		Remainder: handlers.NewRemainderHandler(store, baseLogger.Named("handlers.remainder")),
		Report:    handlers.NewReportHandler(reportSvc, baseLogger.Named("handlers.report")),
		Reset:     handlers.NewResetHandler(resetSvc, baseLogger.Named("handlers.reset")),
		Ingest:    handlers.NewIngestHandler(ingestSvc, baseLogger.Named("handlers.ingest")),
	}, authSvc, cfg.Reset.InternalToken, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reset, resetSvc, baseLogger.Named("scheduler"))
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
