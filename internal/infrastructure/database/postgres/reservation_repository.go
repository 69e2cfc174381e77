package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"
)

const (
	selectReservationsForCustomerQuery = `SELECT id, customer_id, start_at, num_guests, COALESCE(notes, '') AS notes
FROM reservations
WHERE customer_id = $1
ORDER BY start_at`

	insertReservationQuery = `INSERT INTO reservations (customer_id, start_at, num_guests, notes)
VALUES ($1, $2, $3, $4)
RETURNING id`

	updateReservationQuery = `UPDATE reservations
SET customer_id = $1, start_at = $2, num_guests = $3, notes = $4
WHERE id = $5`
)

type ReservationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ reservation.Repository = (*ReservationRepository)(nil)

func NewReservationRepository(db DBPool, logger *slog.Logger) *ReservationRepository {
	if db == nil {
		panic("DBPool cannot be nil for ReservationRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewReservationRepository, using default stderr handler")
	}
	return &ReservationRepository{
		db:     db,
		logger: logger.With("component", "ReservationRepository"),
	}
}

func (r *ReservationRepository) GetReservationsForCustomer(ctx context.Context, customerID int64) (reservations []*reservation.Reservation, err error) {
	defer func(start time.Time) { observe("ListReservations", start, err) }(time.Now())
	logger := r.logger.With(slog.Int64("customerID", customerID))

	rows, err := r.db.Query(ctx, selectReservationsForCustomerQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to query reservations", slog.Any("error", err))
		return nil, wrapDBError(err, "failed to list reservations", logger)
	}
	defer rows.Close()

	reservations = make([]*reservation.Reservation, 0)
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			logger.ErrorContext(ctx, "Failed to map reservation row", slog.Any("error", scanErr))
			return nil, scanErr
		}
		reservations = append(reservations, res)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorContext(ctx, "Error iterating reservation rows", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, "failed iterating reservation rows", err)
	}

	return reservations, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if res == nil {
		return fmt.Errorf("%w: reservation cannot be nil", apperrors.ErrInvalidArgument)
	}
	if res.IsPersisted() {
		return r.update(ctx, res)
	}
	return r.insert(ctx, res)
}

func (r *ReservationRepository) insert(ctx context.Context, res *reservation.Reservation) (err error) {
	defer func(start time.Time) { observe("InsertReservation", start, err) }(time.Now())
	logger := r.logger.With(slog.Int64("customerID", res.CustomerID))

	var id int64
	err = r.db.QueryRow(ctx, insertReservationQuery,
		res.CustomerID,
		res.StartAt,
		res.NumGuests,
		res.Notes,
	).Scan(&id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to insert reservation", slog.Any("error", err))
		return wrapDBError(err, "failed to insert reservation", logger)
	}

	res.ReservationID = id
	logger.InfoContext(ctx, "Reservation inserted", slog.Int64("reservationID", id))
	return nil
}

func (r *ReservationRepository) update(ctx context.Context, res *reservation.Reservation) (err error) {
	defer func(start time.Time) { observe("UpdateReservation", start, err) }(time.Now())
	logger := r.logger.With(slog.Int64("reservationID", res.ReservationID))

	cmdTag, err := r.db.Exec(ctx, updateReservationQuery,
		res.CustomerID,
		res.StartAt,
		res.NumGuests,
		res.Notes,
		res.ReservationID,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update reservation", slog.Any("error", err))
		return wrapDBError(err, "failed to update reservation", logger)
	}
	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update matched no reservation")
		return apperrors.NewNotFoundError("reservation", res.ReservationID)
	}

	logger.InfoContext(ctx, "Reservation updated")
	return nil
}
