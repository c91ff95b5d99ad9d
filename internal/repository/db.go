package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/equicharts/race-results-tracker/internal/common"
)

// Dialect identifies the SQL dialect backing a DB handle.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps a *sql.DB together with its dialect so repositories can write
// queries once with $N placeholders and rebind for SQLite.
type DB struct {
	*sql.DB
	dialect Dialect
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $N placeholders to ? for SQLite. Postgres queries pass
// through unchanged.
func (d *DB) Rebind(query string) string {
	if d.dialect == DialectPostgres {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Open connects to the database named by the DSN. A postgres:// DSN gets a
// tuned pgx pool wrapped as *sql.DB; anything else is treated as a SQLite
// path (including :memory:).
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, *pgxpool.Pool, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, *pgxpool.Pool, error) {
	logger.Info("connecting to database", "dialect", DialectPostgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database dsn", "error", err)
		return nil, nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "race-results-tracker"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return &DB{DB: db, dialect: DialectPostgres}, pool, nil
}

func openSQLite(cfg common.DatabaseConfig, logger *slog.Logger) (*DB, *pgxpool.Pool, error) {
	logger.Info("connecting to database", "dialect", DialectSQLite, "path", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, nil, err
	}
	// A single connection keeps :memory: databases coherent and avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)
	return &DB{DB: db, dialect: DialectSQLite}, nil, nil
}

// Close closes the database connections gracefully.
func Close(db *DB, pool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("closing database connections")
	if db != nil {
		if err := db.DB.Close(); err != nil {
			logger.Error("failed to close database handle", "error", err)
		}
	}
	if pool != nil {
		pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

const jobsSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	pdf_path      TEXT NOT NULL,
	format        TEXT NOT NULL,
	status        TEXT NOT NULL,
	download_url  TEXT,
	output_path   TEXT,
	error_message TEXT,
	worker_id     TEXT,
	created_at    TEXT NOT NULL,
	completed_at  TEXT
)`

// EnsureSchema creates the jobs table if it does not exist. The DDL sticks
// to types both Postgres and SQLite accept; timestamps are stored as
// RFC 3339 text.
func EnsureSchema(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, jobsSchema)
	if err != nil {
		return common.WrapError(err, "ensure schema")
	}
	return nil
}
