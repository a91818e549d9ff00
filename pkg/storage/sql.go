package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/cuemby/airflow-exporter/pkg/duration"
	"github.com/cuemby/airflow-exporter/pkg/log"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver, registered as "pgx"
	_ "github.com/lib/pq"              // PostgreSQL driver, registered as "postgres"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLStore implements Store on top of database/sql.
type SQLStore struct {
	db       *sql.DB
	driver   string
	strategy duration.Strategy
	logger   zerolog.Logger

	runningQuery string
}

// KnownDriver reports whether a database/sql driver is registered as name.
func KnownDriver(name string) bool {
	return slices.Contains(sql.Drivers(), name)
}

// Open creates a SQLStore for cfg. The pool is created lazily: Open does not
// contact the database, use Ping for that.
func Open(cfg Config) (*SQLStore, error) {
	if !KnownDriver(cfg.Driver) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return NewSQLStore(db, cfg.Driver), nil
}

// NewSQLStore wraps an existing pool. driver selects the duration strategy.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	strategy := duration.Select(driver)
	logger := log.WithComponent("storage")
	logger.Debug().
		Str("driver", driver).
		Str("strategy", strategy.Name).
		Stringer("unit", strategy.Unit).
		Msg("duration strategy selected")

	return &SQLStore{
		db:           db,
		driver:       driver,
		strategy:     strategy,
		logger:       logger,
		runningQuery: runningDagRunsQuery(strategy),
	}
}

// Driver returns the configured driver name.
func (s *SQLStore) Driver() string {
	return s.driver
}

// Strategy returns the duration strategy selected for the driver.
func (s *SQLStore) Strategy() duration.Strategy {
	return s.strategy
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying pool.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Close closes the pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
