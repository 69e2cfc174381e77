package dto

import (
	"fmt"
	"time"

	"lunchly/internal/domain/reservation"
)

type CreateReservationRequest struct {
	StartAt   time.Time `json:"startAt"`
	NumGuests int       `json:"numGuests"`
	Notes     string    `json:"notes"`
}

func (r *CreateReservationRequest) Validate() error {
	if r.StartAt.IsZero() {
		return fmt.Errorf("startAt is required")
	}
	if r.NumGuests < 1 {
		return fmt.Errorf("numGuests must be at least 1")
	}
	return nil
}

type ReservationResponse struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	StartAt       time.Time `json:"startAt"`
	NumGuests     int       `json:"numGuests"`
	Notes         string    `json:"notes,omitempty"`
}

func NewReservationResponse(res *reservation.Reservation) ReservationResponse {
	if res == nil {
		return ReservationResponse{}
	}
	return ReservationResponse{
		ReservationID: res.ReservationID,
		CustomerID:    res.CustomerID,
		StartAt:       res.StartAt,
		NumGuests:     res.NumGuests,
		Notes:         res.Notes,
	}
}

func NewReservationListResponse(reservations []*reservation.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		resp = append(resp, NewReservationResponse(r))
	}
	return resp
}
