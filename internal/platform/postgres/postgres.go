// Package postgres opens the two database handles the service uses: a sqlx
// handle (lib/pq driver) for the custody store and a pgx pool for the
// permission store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"custody/internal/platform/config"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

var (
	sqlxOpen             = sqlx.Open
	pgxPoolNewWithConfig = pgxpool.NewWithConfig
	connectRetries       = 10
	retryDelay           = 2 * time.Second
	pingTimeout          = 2 * time.Second
	sleep                = time.Sleep
)

// Open returns a pinged sqlx handle configured from cfg.
func Open(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	db, err := sqlxOpen(DriverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	var lastErr error
	for i := 0; i < connectRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return db, nil
		}
		if ctx.Err() != nil {
			break
		}
		sleep(retryDelay)
	}
	_ = db.Close()
	return nil, fmt.Errorf("db ping retries exhausted: %w", lastErr)
}

// NewPool returns a pinged pgx pool for dsn.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute

	var lastErr error
	for i := 0; i < connectRetries; i++ {
		pool, err := pgxPoolNewWithConfig(ctx, cfg)
		if err != nil {
			lastErr = err
			sleep(retryDelay)
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return pool, nil
		}
		lastErr = err
		pool.Close()
		if ctx.Err() != nil {
			break
		}
		sleep(retryDelay)
	}
	return nil, fmt.Errorf("pool ping retries exhausted: %w", lastErr)
}

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// IsForeignKeyViolation reports whether err is a Postgres FK violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeForeignKeyViolation
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}
