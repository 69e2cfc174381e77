package reservation

import (
	"strings"
	"time"

	"lunchly/internal/pkg/apperrors"
)

type Reservation struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	StartAt       time.Time `json:"startAt"`
	NumGuests     int       `json:"numGuests"`
	Notes         string    `json:"notes"`
}

// NewReservation builds a transient reservation for an existing customer.
func NewReservation(customerID int64, startAt time.Time, numGuests int, notes string) (*Reservation, error) {
	r := &Reservation{
		CustomerID: customerID,
		StartAt:    startAt,
		NumGuests:  numGuests,
		Notes:      strings.TrimSpace(notes),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reservation) Validate() error {
	if r.CustomerID <= 0 {
		return apperrors.NewValidationError("customerId", "must reference an existing customer")
	}
	if r.StartAt.IsZero() {
		return apperrors.NewValidationError("startAt", "is required")
	}
	if r.NumGuests < 1 {
		return apperrors.NewValidationError("numGuests", "must be at least 1")
	}
	return nil
}

func (r *Reservation) IsPersisted() bool {
	return r.ReservationID != 0
}
