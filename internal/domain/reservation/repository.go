package reservation

import (
	"context"
)

type Repository interface {
	// GetReservationsForCustomer returns the customer's reservations ordered by start time.
	GetReservationsForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)

	// Save inserts a transient reservation or updates a persisted one.
	Save(ctx context.Context, reservation *Reservation) error
}
