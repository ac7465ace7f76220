package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

type Config struct {
	DSN         string // postgres://... for PostgreSQL, otherwise a SQLite file path (sqlite:// prefix optional)
	DialTimeout time.Duration
}

// DB wraps an Ent SQL driver over either a pgx pool or a SQLite handle.
type DB struct {
	drv     *entsql.Driver
	dialect string
	pool    *pgxpool.Pool
	logger  *slog.Logger
}

// Open connects to the history database and makes sure the schema exists.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}

	var db *DB
	var err error
	if isPostgres(cfg.DSN) {
		db, err = openPostgres(ctx, cfg, logger)
	} else {
		db, err = openSQLite(cfg, logger)
	}
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.NewAppError(common.CodeStore, "open history database", fmt.Errorf("%w: %w", common.ErrStore, err))
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := db.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, common.NewAppError(common.CodeStore, "create history schema", fmt.Errorf("%w: %w", common.ErrStore, err))
	}
	logger.Info("successfully connected to database", "dialect", db.dialect)
	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "driver", "pgx")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	pc.MaxConns = 2
	pc.ConnConfig.RuntimeParams["application_name"] = "resume-extractor"

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Wrap pool as *sql.DB for Ent
	drv := entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool))
	return &DB{drv: drv, dialect: dialect.Postgres, pool: pool, logger: logger}, nil
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, error) {
	path := strings.TrimPrefix(cfg.DSN, "sqlite://")
	logger.Info("connecting to database", "driver", "sqlite", "path", path)
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	drv := entsql.OpenDB(dialect.SQLite, sqldb)
	return &DB{drv: drv, dialect: dialect.SQLite, logger: logger}, nil
}

// createRunsTable is valid DDL for both SQLite and PostgreSQL.
const createRunsTable = `CREATE TABLE IF NOT EXISTS ` + runsTable + ` (
	id            VARCHAR(36) PRIMARY KEY,
	source_path   TEXT NOT NULL,
	output_path   TEXT NOT NULL,
	status        VARCHAR(16) NOT NULL,
	started_at    VARCHAR(40) NOT NULL,
	finished_at   VARCHAR(40),
	error_message TEXT,
	name_source   VARCHAR(16),
	record_json   TEXT
)`

func (db *DB) ensureSchema(ctx context.Context) error {
	return db.drv.Exec(ctx, createRunsTable, []any{}, nil)
}

// Close closes the database connections gracefully
func (db *DB) Close() {
	db.logger.Debug("closing database connections")
	if err := db.drv.Close(); err != nil {
		db.logger.Error("failed to close database driver", "error", err)
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

// HealthCheck pings the database to catch DSN issues early.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	db.logger.Debug("pinging database")
	return db.drv.DB().PingContext(ctx)
}

// Dialect returns the SQL dialect in use.
func (db *DB) Dialect() string { return db.dialect }
