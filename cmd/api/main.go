package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/confguard/confguard/internal/api/handlers"
	"github.com/confguard/confguard/internal/api/middleware"
	"github.com/confguard/confguard/internal/api/router"
	"github.com/confguard/confguard/internal/config"
	"github.com/confguard/confguard/internal/devlock"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/validator"
	"github.com/confguard/confguard/internal/repository/store"
	"github.com/confguard/confguard/internal/services"
	"github.com/confguard/confguard/internal/worker"
	"github.com/confguard/confguard/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := store.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	migrationFS, err := migrations.For(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}
	if err := store.RunMigrations(db, migrationFS); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	snapshotRepo := store.NewSnapshotRepository(db)
	baselineRepo := store.NewBaselineRepository(db)
	proposalRepo := store.NewProposalRepository(db)
	deviationRepo := store.NewDeviationRepository(db)
	ignoreRepo := store.NewIgnoreRepository(db)

	locks := devlock.New(cfg.Workflow.LockTimeout)

	baselineSvc := services.NewBaselineService(baselineRepo, snapshotRepo, locks, log)
	proposalSvc := services.NewProposalService(proposalRepo, locks, cfg.Workflow.DecideRetries, log)
	deviationSvc := services.NewDeviationService(deviationRepo, ignoreRepo, log)

	v := validator.New()

	r := router.New(router.Deps{
		Baselines:  handlers.NewBaselineHandler(baselineSvc, log),
		Proposals:  handlers.NewProposalHandler(proposalSvc, v, log),
		Deviations: handlers.NewDeviationHandler(deviationSvc, v, log),
		Health:     handlers.NewHealthHandler(db),
		Logger:     log,
		RateLimit:  middleware.NewRateLimiter(50, 100),
		CORSOrigin: []string{cfg.Server.FrontendURL},
	})

	var gauge *worker.SeverityGauge
	if cfg.Worker.Enabled {
		gauge = worker.NewSeverityGauge(deviationRepo, baselineRepo, cfg.Worker.GaugeSchedule, log)
		if err := gauge.Start(); err != nil {
			log.Fatalf("Failed to start severity gauge worker: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	if gauge != nil {
		gauge.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}

	log.Info("Server stopped")
}
