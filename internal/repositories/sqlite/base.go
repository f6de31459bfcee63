package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"tribute-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// DBTX is the subset of *sql.DB used by the repositories
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// BaseRepository provides common functionality for SQLite-dialect repositories
type BaseRepository struct {
	db     DBTX
	table  string
	entity string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db DBTX, table, entity string, logger *logrus.Logger) *BaseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository{
		db:     db,
		table:  table,
		entity: entity,
		logger: logger,
	}
}

// logQuery logs a query with its execution time
func (r *BaseRepository) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *BaseRepository) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	duration := time.Since(start)

	r.logQuery(operation, query, args, duration, err)

	if err != nil {
		return nil, repositories.ClassifyDriverError(operation, r.entity, "", err)
	}

	return rows, nil
}

// scanRow executes a single-row query, scans it into dest and logs the result.
// sql.ErrNoRows is returned unwrapped so callers can map it to not found.
func (r *BaseRepository) scanRow(ctx context.Context, operation, query string, args []interface{}, dest ...interface{}) error {
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	duration := time.Since(start)

	if err == sql.ErrNoRows {
		r.logQuery(operation, query, args, duration, nil)
		return err
	}

	r.logQuery(operation, query, args, duration, err)

	if err != nil {
		return repositories.ClassifyDriverError(operation, r.entity, "", err)
	}
	return nil
}

// executeExec executes a non-query statement and logs the result
func (r *BaseRepository) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	r.logQuery(operation, query, args, duration, err)

	if err != nil {
		return nil, repositories.ClassifyDriverError(operation, r.entity, "", err)
	}

	return result, nil
}

// checkRowsAffected checks if the expected number of rows were affected
func (r *BaseRepository) checkRowsAffected(result sql.Result, operation string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, r.entity, formatID(id), err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(r.entity, formatID(id))
	}

	return nil
}

// validateID validates that an ID can refer to a stored row
func (r *BaseRepository) validateID(id int64) error {
	if id == 0 {
		return repositories.NewRepositoryError("validate", r.entity, formatID(id), repositories.ErrInvalidID)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
