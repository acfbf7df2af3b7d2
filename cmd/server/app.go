package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"custody/internal/access"
	accessstore "custody/internal/access/store"
	"custody/internal/actionlog"
	custodyhandler "custody/internal/custody/handler"
	custodymetrics "custody/internal/custody/metrics"
	custodyservice "custody/internal/custody/service"
	custodystore "custody/internal/custody/store"
	"custody/internal/identity"
	"custody/internal/platform/config"
	"custody/internal/platform/logger"
	"custody/internal/platform/metrics"
	"custody/internal/platform/postgres"
	"custody/internal/platform/redis"
	"custody/internal/reference"
	"custody/pkg/platform/httputil"
)

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	db       *sqlx.DB
	perms    *pgxpool.Pool
	redis    *redis.Client
	registry *prometheus.Registry
	custody  *custodyservice.Service
}

// newApp opens the databases and builds the custody service.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{
		cfg:      cfg,
		log:      logger.New(cfg.Logging.Level, cfg.Logging.Format),
		registry: prometheus.NewRegistry(),
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var err error
	if a.db, err = postgres.Open(ctx, cfg.Database); err != nil {
		return nil, err
	}
	if a.perms, err = postgres.NewPool(ctx, cfg.Database.PermissionsURL, int32(cfg.Database.MaxOpenConns)); err != nil {
		a.close()
		return nil, err
	}
	if a.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		a.log.WarnContext(ctx, "redis unavailable, using in-process reference cache", "error", err)
	}

	var cache reference.Cache = reference.NewMemoryCache()
	if a.redis != nil {
		cache = reference.NewCache(ctx, a.redis.Client)
	}
	refs := reference.NewService(reference.NewPostgresStore(a.db), cache,
		reference.WithLogger(a.log),
		reference.WithTTL(cfg.Redis.ReferenceTTL),
	)
	gate := access.NewGate(accessstore.NewPostgres(a.perms),
		access.WithLogger(a.log),
		access.WithMetrics(access.NewMetrics(a.registry)),
	)
	actions := actionlog.NewPublisher(actionlog.NewPostgresStore(a.db), actionlog.WithLogger(a.log))

	a.custody = custodyservice.New(
		custodystore.NewPostgres(a.db),
		newCustodyPostgresTx(a.db, cfg.Database.TxTimeout),
		gate,
		custodyservice.WithLogger(a.log),
		custodyservice.WithMetrics(custodymetrics.New(a.registry)),
		custodyservice.WithReference(refs),
		custodyservice.WithActionPublisher(actions),
	)
	return a, nil
}

// router mounts the custody API, /healthz and the metrics endpoint.
func (a *app) router() (http.Handler, error) {
	resolver, err := identity.NewResolver(a.cfg.Identity)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/healthz", a.handleHealth)
	r.Handle(a.cfg.Server.MetricsPath, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	custodyhandler.New(a.custody, resolver, a.log, metrics.New(a.registry), a.cfg.Server.RequestTimeout).Register(r)
	return r, nil
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"postgres": "ok"}
	var failed error
	if err := a.db.PingContext(ctx); err != nil {
		checks["postgres"] = err.Error()
		failed = errors.Join(failed, fmt.Errorf("postgres: %w", err))
	}
	if a.redis != nil {
		checks["redis"] = "ok"
		if err := a.redis.Health(ctx); err != nil {
			checks["redis"] = err.Error()
			failed = errors.Join(failed, fmt.Errorf("redis: %w", err))
		}
	}

	status := http.StatusOK
	if failed != nil {
		a.log.ErrorContext(ctx, "health check failed", "error", failed)
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, map[string]any{
		"success": failed == nil,
		"data":    checks,
	})
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.perms != nil {
		a.perms.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
