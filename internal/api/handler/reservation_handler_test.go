package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"lunchly/internal/api/handler"
	"lunchly/internal/api/handler/dto"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReservationRouter(customers *MockCustomerService, reservations *MockReservationService) *chi.Mux {
	h := handler.NewReservationHandler(customers, reservations, testLogger)
	r := chi.NewRouter()
	r.Get("/customers/{customerID}/reservations", h.ListReservations)
	r.Post("/customers/{customerID}/reservations", h.CreateReservation)
	return r
}

func TestListReservationsHandler(t *testing.T) {
	startAt := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	t.Run("returns the customer's reservations", func(t *testing.T) {
		customers := new(MockCustomerService)
		customers.On("GetCustomerReservations", mock.Anything, int64(7)).Return([]*reservation.Reservation{
			{ReservationID: 1, CustomerID: 7, StartAt: startAt, NumGuests: 2},
		}, nil).Once()

		rec := doRequest(t, newReservationRouter(customers, new(MockReservationService)), http.MethodGet, "/customers/7/reservations", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.ReservationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.True(t, startAt.Equal(resp[0].StartAt))
		assert.Equal(t, 2, resp[0].NumGuests)
		customers.AssertExpectations(t)
	})

	t.Run("answers 404 for an unknown customer", func(t *testing.T) {
		customers := new(MockCustomerService)
		customers.On("GetCustomerReservations", mock.Anything, int64(9)).
			Return(nil, apperrors.NewNotFoundError("customer", int64(9))).Once()

		rec := doRequest(t, newReservationRouter(customers, new(MockReservationService)), http.MethodGet, "/customers/9/reservations", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateReservationHandler(t *testing.T) {
	startAt := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	t.Run("books a reservation for an existing customer", func(t *testing.T) {
		customers := new(MockCustomerService)
		reservations := new(MockReservationService)
		customers.On("GetCustomer", mock.Anything, int64(7)).Return(sampleCustomer(), nil).Once()
		reservations.On("AddReservation", mock.Anything, int64(7), mock.MatchedBy(startAt.Equal), 4, "birthday").
			Return(&reservation.Reservation{ReservationID: 31, CustomerID: 7, StartAt: startAt, NumGuests: 4, Notes: "birthday"}, nil).Once()

		rec := doRequest(t, newReservationRouter(customers, reservations), http.MethodPost, "/customers/7/reservations",
			dto.CreateReservationRequest{StartAt: startAt, NumGuests: 4, Notes: "birthday"})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.ReservationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(31), resp.ReservationID)
		customers.AssertExpectations(t)
		reservations.AssertExpectations(t)
	})

	t.Run("answers 404 without booking for an unknown customer", func(t *testing.T) {
		customers := new(MockCustomerService)
		reservations := new(MockReservationService)
		customers.On("GetCustomer", mock.Anything, int64(9)).
			Return(nil, apperrors.NewNotFoundError("customer", int64(9))).Once()

		rec := doRequest(t, newReservationRouter(customers, reservations), http.MethodPost, "/customers/9/reservations",
			dto.CreateReservationRequest{StartAt: startAt, NumGuests: 2})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		reservations.AssertNotCalled(t, "AddReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a party of zero", func(t *testing.T) {
		customers := new(MockCustomerService)

		rec := doRequest(t, newReservationRouter(customers, new(MockReservationService)), http.MethodPost, "/customers/7/reservations",
			dto.CreateReservationRequest{StartAt: startAt, NumGuests: 0})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		customers.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	})
}
