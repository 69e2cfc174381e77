package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lunchly/internal/infrastructure/monitoring"
	"lunchly/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

// DBPool is the query executor the repositories run on.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %s: %w"

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateDBError maps driver errors the callers can act on. Anything else
// is returned as is.
func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s: %w", apperrors.ErrAlreadyExists, pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: referenced row missing (%s): %w", apperrors.ErrNotFound, pgErr.ConstraintName, err)
		}
	}
	return err
}

// wrapDBError translates err and, when nothing more specific applies, marks
// it as a database error.
func wrapDBError(err error, action string, logger *slog.Logger) error {
	translated := translateDBError(err, logger)
	if translated != err {
		return translated
	}
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, action, err)
}

func observe(queryName string, start time.Time, err error) {
	monitoring.RecordDBQuery(queryName, monitoring.QueryStatus(err), time.Since(start))
}
