// Package database contains the logic for establishing connections to
// the PostgreSQL database.
//
// It handles:
//   - building a DSN from config (or taking a full URL override)
//   - creating a pgx connection pool (pgxpool) with min/max bounds
//   - wiring SQL query tracing through zerolog in the local env
//   - the per-query timeout applied by the repository layer
package database

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/obolabs/obo-server/internal/config"
	loggerPkg "github.com/obolabs/obo-server/internal/logger"
)

// ErrNotInitialized is returned when a query is attempted against a
// Database whose pool was never opened or has been closed. It is a
// distinct condition from a database-level failure: the health
// endpoint reports it as "pool_not_initialized" rather than degraded.
var ErrNotInitialized = errors.New("database pool not initialized")

// DatabasePingTimeout bounds the startup connectivity check, in seconds.
const DatabasePingTimeout = 10

// Database wraps the pgx connection pool and a logger, plus the
// per-query timeout from config.
type Database struct {
	Pool *pgxpool.Pool

	log          *zerolog.Logger
	queryTimeout time.Duration
}

// New creates a PostgreSQL connection pool.
//
// Behavior:
//   - Build DSN from config (OBO_DATABASE_URL overrides the parts)
//   - Apply MinConns/MaxConns pool bounds
//   - In the local env, attach a SQL tracelogger via pgx-zerolog
//   - Create the pool and ping it so startup fails fast if the
//     database is down
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MinConns = int32(cfg.Database.MinConns)
	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxConns)

	// SQL statement logging is noisy, so it only runs locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerPkg.NewPgxLogger(globalLevel)

		pgxPoolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerPkg.PgxTraceLogLevel(globalLevel),
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		// Release the connections acquired so far; the pool must be
		// torn down on every exit path, including startup failure.
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Int("min_conns", cfg.Database.MinConns).
		Int("max_conns", cfg.Database.MaxConns).
		Msg("connected to the database")

	return &Database{
		Pool:         pool,
		log:          logger,
		queryTimeout: time.Duration(cfg.Database.QueryTimeout) * time.Second,
	}, nil
}

// Ready reports whether the pool can serve queries.
func (db *Database) Ready() error {
	if db == nil || db.Pool == nil {
		return ErrNotInitialized
	}
	return nil
}

// QueryContext derives a context bounded by the configured per-query
// timeout. A zero timeout leaves the context unbounded, matching the
// original service's behavior.
func (db *Database) QueryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// Close closes the database connection pool. Safe to call once at
// shutdown; further queries fail with ErrNotInitialized.
func (db *Database) Close() error {
	if db.Pool == nil {
		return nil
	}
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}
