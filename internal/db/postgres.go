package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/magallanes/coursecatalog/internal/config"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
)

const (
	connectTimeout = 10 * time.Second
	// importTxTimeout bounds an import transaction when the caller set no deadline.
	importTxTimeout = 30 * time.Second
)

// PostgresDB is the pool behind the course_records import target.
type PostgresDB struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresDB connects to the import database and verifies it answers.
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	log := logger.WithComponent("postgres").With().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Logger()

	poolConfig, err := newPoolConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach %s on %s: %w", cfg.Database.DBName, cfg.Database.Host, err)
	}

	log.Info().Int32("maxConns", poolConfig.MaxConns).Msg("Postgres import target ready")
	return &PostgresDB{Pool: pool, log: log}, nil
}

func newPoolConfig(cfg *config.Config, log zerolog.Logger) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("invalid database.conn_max_lifetime %q: %w", cfg.Database.ConnMaxLifetime, err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = maxLifetime
	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Dropping unhealthy connection")
			return false
		}
		return true
	}
	return poolConfig, nil
}

// Close releases the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn inside a transaction. fn's error or panic rolls back
// every batch of the import.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, importTxTimeout)
		defer cancel()
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			db.log.Error().Err(rbErr).Msg("Failed to roll back import transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		db.log.Warn().Err(err).Msg("Import transaction rolled back")
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}
