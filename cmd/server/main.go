// Command server runs the yojana eligibility service: document intake, the
// scheme catalog, the eligibility engine, and the recalculation worker in one
// process. main only wires dependencies; business logic lives in internal
// packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	dashboardHandler "yojana/internal/dashboard/handler"
	dashboardService "yojana/internal/dashboard/service"
	"yojana/internal/eligibility"
	eligibilityCache "yojana/internal/eligibility/cache"
	eligibilityHandler "yojana/internal/eligibility/handler"
	eligibilityMetrics "yojana/internal/eligibility/metrics"
	eligibilityStore "yojana/internal/eligibility/store"
	httpapi "yojana/internal/http"
	"yojana/internal/platform/config"
	"yojana/internal/platform/httpserver"
	"yojana/internal/platform/kafka"
	"yojana/internal/platform/logger"
	"yojana/internal/platform/metrics"
	"yojana/internal/platform/postgres"
	"yojana/internal/platform/redis"
	profileHandler "yojana/internal/profile/handler"
	profileService "yojana/internal/profile/service"
	profileStore "yojana/internal/profile/store"
	"yojana/internal/recalc"
	"yojana/internal/recalc/worker"
	schemeHandler "yojana/internal/scheme/handler"
	schemeService "yojana/internal/scheme/service"
	schemeStore "yojana/internal/scheme/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("service exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if producer != nil {
		defer producer.Close()
	}
	consumer, err := kafka.NewConsumer(cfg.Kafka)
	if err != nil {
		return err
	}
	if consumer != nil {
		defer consumer.Close()
	}

	publisher := recalc.NewPublisher(producer, log)

	var docStore profileService.Store
	var catalogStore schemeService.Store
	var resultStore eligibility.Store
	if db != nil {
		docStore = profileStore.NewPostgres(db)
		catalogStore = schemeStore.NewPostgres(db)
		resultStore = eligibilityStore.NewPostgres(db)
	} else {
		docStore = profileStore.NewMemory()
		memCatalog := schemeStore.NewMemory()
		if err := schemeStore.Seed(ctx, memCatalog, time.Now().UTC()); err != nil {
			return err
		}
		catalogStore = memCatalog
		resultStore = eligibilityStore.NewMemory()
	}

	var reportCache eligibility.ReportCache
	var invalidator profileService.ReportInvalidator
	if cache := eligibilityCache.New(redisClient, cfg.Redis.ReportTTL); cache != nil {
		reportCache = cache
		invalidator = cache
	}

	profiles := profileService.New(docStore, publisher, invalidator, log)
	schemes := schemeService.New(catalogStore, profiles, publisher, log)
	engine := eligibility.New(
		profiles,
		catalogStore,
		resultStore,
		reportCache,
		eligibilityMetrics.New(),
		log,
		cfg.Engine.MaxConcurrency,
	)
	dashboards := dashboardService.New(profiles, engine, log)

	checks := map[string]httpapi.HealthChecker{}
	if db != nil {
		checks["postgres"] = dbHealth{db: db}
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	router := httpapi.NewRouter(
		httpapi.Options{
			Logger:  log,
			Metrics: metrics.New(),
			Checks:  checks,
		},
		profileHandler.New(profiles, log),
		schemeHandler.New(schemes, log),
		eligibilityHandler.New(engine, log),
		dashboardHandler.New(dashboards, log),
	)

	srv := httpserver.New(cfg.Server, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting yojana service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		recalcWorker := worker.New(engine, log)
		return recalcWorker.Run(groupCtx, consumer)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("service stopped")
	return nil
}

type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Health(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
