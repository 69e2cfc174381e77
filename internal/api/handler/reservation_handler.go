package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"lunchly/internal/api/handler/dto"
	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"
)

type ReservationHandler struct {
	customers    customer.CustomerService
	reservations reservation.ReservationService
	logger       *slog.Logger
}

func NewReservationHandler(customers customer.CustomerService, reservations reservation.ReservationService, l *slog.Logger) *ReservationHandler {
	if customers == nil || reservations == nil {
		panic("customer and reservation services cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ReservationHandler{
		customers:    customers,
		reservations: reservations,
		logger:       l.With("component", "ReservationHandler"),
	}
}

// ListReservations handles GET /customers/{customerID}/reservations
// @Summary List a customer's reservations
// @Description Returns the customer's reservations ordered by start time.
// @Tags Reservations
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.ReservationResponse "Reservations"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.Int64("customerID", customerID))

	reservations, err := h.customers.GetCustomerReservations(r.Context(), customerID)
	if err != nil {
		logger.WarnContext(r.Context(), "Failed to list reservations", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationListResponse(reservations))
}

// CreateReservation handles POST /customers/{customerID}/reservations
// @Summary Book a reservation
// @Description Adds a reservation for an existing customer.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} dto.ReservationResponse "Reservation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.Int64("customerID", customerID))

	var req dto.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if _, err := h.customers.GetCustomer(r.Context(), customerID); err != nil {
		logger.WarnContext(r.Context(), "Reservation for unknown customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.reservations.AddReservation(r.Context(), customerID, req.StartAt, req.NumGuests, req.Notes)
	if err != nil {
		logger.ErrorContext(r.Context(), "Service failed to add reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Reservation created", slog.Int64("reservationID", created.ReservationID))
	respondJSON(w, http.StatusCreated, dto.NewReservationResponse(created))
}
