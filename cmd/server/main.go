package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"phonebook/internal/contact/handler"
	contactmetrics "phonebook/internal/contact/metrics"
	"phonebook/internal/contact/service"
	"phonebook/internal/contact/store"
	"phonebook/internal/platform/config"
	"phonebook/internal/platform/httpserver"
	"phonebook/internal/platform/logger"
	"phonebook/internal/platform/metrics"
	"phonebook/internal/platform/postgres"
	platformredis "phonebook/internal/platform/redis"
	httptransport "phonebook/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	if cfg.Store.Seed {
		added, err := store.Seed(ctx, backend.store)
		if err != nil {
			return fmt.Errorf("seed contacts: %w", err)
		}
		if added > 0 {
			log.InfoContext(ctx, "seeded sample contacts", "count", added)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.New(backend.store,
		service.WithLogger(log),
		service.WithMetrics(contactmetrics.New(reg)),
	)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:      log,
		Metrics:     metrics.New(reg),
		Gatherer:    reg,
		HealthCheck: backend.health,
		Modules:     []httptransport.Registrar{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.ReadHeaderTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting phonebook",
			"addr", cfg.Server.Addr,
			"store", cfg.Store.Backend,
		)
		return httpserver.Serve(gctx, srv, cfg.Server.ShutdownTimeout)
	})

	err = g.Wait()
	log.Info("phonebook stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// backend is the selected directory store with its lifecycle hooks.
type backend struct {
	store  service.Store
	health httptransport.HealthCheck
	close  func()
}

func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &backend{
			store:  pg,
			health: db.PingContext,
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn("close postgres", "error", err)
				}
			},
		}, nil

	case config.BackendRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  store.NewRedis(client.Client),
			health: client.Health,
			close: func() {
				if err := client.Close(); err != nil {
					log.Warn("close redis", "error", err)
				}
			},
		}, nil

	default:
		return &backend{store: store.NewInMemory(), close: func() {}}, nil
	}
}
