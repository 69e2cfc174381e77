package postgres

import (
	"errors"
	"fmt"

	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	customerColumns    = []string{"id", "first_name", "last_name", "phone", "notes"}
	reservationColumns = []string{"id", "customer_id", "start_at", "num_guests", "notes"}
)

func checkColumns(entity string, fields []pgconn.FieldDescription, expected []string) error {
	for i, name := range expected {
		if i >= len(fields) {
			return &apperrors.MappingError{Entity: entity, Column: name, Cause: errors.New("column missing from result")}
		}
		if fields[i].Name != name {
			return &apperrors.MappingError{
				Entity: entity,
				Column: name,
				Cause:  fmt.Errorf("found %q at position %d", fields[i].Name, i),
			}
		}
	}
	if len(fields) > len(expected) {
		return &apperrors.MappingError{
			Entity: entity,
			Column: fields[len(expected)].Name,
			Cause:  errors.New("unexpected column in result"),
		}
	}
	return nil
}

func scanError(entity string, columns []string, err error) error {
	var argErr pgx.ScanArgError
	if errors.As(err, &argErr) && argErr.ColumnIndex >= 0 && argErr.ColumnIndex < len(columns) {
		return &apperrors.MappingError{Entity: entity, Column: columns[argErr.ColumnIndex], Cause: argErr.Err}
	}
	return &apperrors.MappingError{Entity: entity, Cause: err}
}

func scanCustomer(row pgx.CollectableRow) (*customer.Customer, error) {
	if err := checkColumns("customer", row.FieldDescriptions(), customerColumns); err != nil {
		return nil, err
	}

	var cust customer.Customer
	err := row.Scan(
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Phone,
		&cust.Notes,
	)
	if err != nil {
		return nil, scanError("customer", customerColumns, err)
	}
	if !cust.IsPersisted() {
		return nil, &apperrors.MappingError{Entity: "customer", Column: "id", Cause: errors.New("stored row has no id")}
	}
	return &cust, nil
}

func scanReservation(row pgx.CollectableRow) (*reservation.Reservation, error) {
	if err := checkColumns("reservation", row.FieldDescriptions(), reservationColumns); err != nil {
		return nil, err
	}

	var res reservation.Reservation
	err := row.Scan(
		&res.ReservationID,
		&res.CustomerID,
		&res.StartAt,
		&res.NumGuests,
		&res.Notes,
	)
	if err != nil {
		return nil, scanError("reservation", reservationColumns, err)
	}
	if !res.IsPersisted() {
		return nil, &apperrors.MappingError{Entity: "reservation", Column: "id", Cause: errors.New("stored row has no id")}
	}
	return &res, nil
}
