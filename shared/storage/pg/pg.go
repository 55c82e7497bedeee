// Package pg provides core PostgreSQL database primitives for storage layers.
//
// Core Components:
//   - Querier: Interface for transaction-agnostic database operations
//   - WithTx: Helper for managing database transactions
//   - Connect: Connection establishment for the lib/pq and pgx drivers
//   - Classify: Maps driver errors onto the shared error taxonomy
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/config"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" driver
	"github.com/lib/pq"                // Registers the "postgres" driver
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so storage code can run
// inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int           // Maximum number of open connections to the database
	MaxIdleConns    int           // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration // Maximum amount of time a connection may be reused
	ConnMaxIdleTime time.Duration // Maximum amount of time a connection may be idle
}

// DefaultConnectionConfig returns pool settings suitable for the API server.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// DSN builds a key/value connection string understood by both drivers.
func DSN(pg config.Pg) string {
	sslmode := pg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname, sslmode)
}

// Connect opens the pool with the configured driver and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config, connCfg ConnectionConfig) (*sql.DB, error) {
	return Open(ctx, cfg.PgDriver(), DSN(cfg.Private.Pg), connCfg)
}

// Open is Connect for an explicit driver name and DSN.
func Open(ctx context.Context, driver, dsn string, connCfg ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// WithTx runs fn in a transaction, committing when fn returns nil.
// The deferred Rollback is a no-op after a successful commit.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// PostgreSQL error codes the storage layer reacts to.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeInvalidTextRepr     = "22P02"
)

// SQLState extracts the SQLSTATE code from a lib/pq or pgx error.
func SQLState(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

// Classify converts a database error from operation op into the shared
// taxonomy. Errors that are already classified pass through unchanged;
// anything unrecognised becomes a logged StoreError.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &internal_errors.NotFoundError{Message: fmt.Sprintf("Cannot %s: record not found", op)}
	}
	if code, ok := SQLState(err); ok {
		switch code {
		case CodeUniqueViolation:
			return &internal_errors.ConflictError{Message: fmt.Sprintf("Cannot %s: record already exists", op)}
		case CodeForeignKeyViolation, CodeInvalidTextRepr:
			return &internal_errors.NotFoundError{Message: fmt.Sprintf("Cannot %s: referenced record not found", op)}
		case CodeCheckViolation:
			return &internal_errors.ValidationError{Message: fmt.Sprintf("Cannot %s: invalid data", op)}
		}
	}
	logger.Log.Error("storage operation failed", "op", op, "error", err)
	return &internal_errors.StoreError{Op: op, Err: err}
}

func isClassified(err error) bool {
	return internal_errors.Is[*internal_errors.ValidationError](err) ||
		internal_errors.Is[*internal_errors.PermissionError](err) ||
		internal_errors.Is[*internal_errors.NotFoundError](err) ||
		internal_errors.Is[*internal_errors.ConflictError](err) ||
		internal_errors.Is[*internal_errors.StoreError](err)
}
