package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/ordercore/internal/audit"
	"github.com/nikolayk812/ordercore/internal/config"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/nikolayk812/ordercore/internal/httpapi"
	"github.com/nikolayk812/ordercore/internal/job"
	"github.com/nikolayk812/ordercore/internal/logging"
	"github.com/nikolayk812/ordercore/internal/repository"
	"github.com/nikolayk812/ordercore/internal/service"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("c", "", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("ordercore stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) error {
	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.RunMigrations(pool); err != nil {
			return fmt.Errorf("repository.RunMigrations: %w", err)
		}
		logger.Info("database migrated")
	}

	cur, err := cfg.StoreCurrency()
	if err != nil {
		return err
	}
	threshold, err := cfg.VIPThreshold()
	if err != nil {
		return err
	}

	bus := EventBus.New()

	sink, err := audit.NewSink(cfg.Audit, logger)
	if err != nil {
		return fmt.Errorf("audit.NewSink: %w", err)
	}

	forwarder, err := audit.NewForwarder(bus, sink, cfg.Audit.Workers, cfg.Audit.Timeout, logger)
	if err != nil {
		return fmt.Errorf("audit.NewForwarder: %w", err)
	}
	if err := forwarder.Start(); err != nil {
		return fmt.Errorf("forwarder.Start: %w", err)
	}
	defer func() {
		if err := forwarder.Close(); err != nil {
			logger.Warn("forwarder.Close", zap.Error(err))
		}
	}()

	retry := service.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Lifecycle.MaxAttempts
	retry.BaseDelay = cfg.Lifecycle.InitialBackoff

	store := repository.NewStore(pool)

	svc := service.NewOrderService(store, bus, service.Options{
		Currency:        cur,
		Retry:           retry,
		BulkParallelism: cfg.Lifecycle.BulkParallelism,
		VIPPolicy:       domain.VIPPolicy{Threshold: threshold},
	}, logger)

	sched, err := job.NewScheduler(cfg.System.Location, cfg.Web.ShutdownTimeout, logger)
	if err != nil {
		return fmt.Errorf("job.NewScheduler: %w", err)
	}
	err = sched.AddReconcile(cfg.Stats.ReconcileSchedule, func(ctx context.Context) (int, error) {
		return svc.Stats().Reconcile(ctx, store)
	})
	if err != nil {
		return fmt.Errorf("sched.AddReconcile: %w", err)
	}
	sched.Start()

	server := httpapi.NewServer(svc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.WebAddr()))
		errCh <- server.Start(cfg.WebAddr())
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()

	var errs []error
	if serveErr != nil {
		errs = append(errs, serveErr)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server.Shutdown: %w", err))
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("sched.Stop: %w", err))
	}

	return errors.Join(errs...)
}

func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}
