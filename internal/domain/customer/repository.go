package customer

import (
	"context"

	"lunchly/internal/domain/reservation"
)

// BestCustomersLimit caps the best customers list.
const BestCustomersLimit = 10

type CustomerRepository interface {
	Get(ctx context.Context, customerID int64) (*Customer, error)

	// All is ordered by last name, then first name.
	All(ctx context.Context) ([]*Customer, error)

	SearchByName(ctx context.Context, query string) ([]*Customer, error)

	BestCustomers(ctx context.Context) ([]*Customer, error)

	Save(ctx context.Context, customer *Customer) error

	GetReservations(ctx context.Context, customer *Customer) ([]*reservation.Reservation, error)

	Count(ctx context.Context) (int64, error)
}
