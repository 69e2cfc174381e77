package reservation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/event"
	"lunchly/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTest() (*reservation.MockReservationRepository, *reservation.MockEventPublisher, reservation.ReservationService) {
	mockRepo := new(reservation.MockReservationRepository)
	mockPub := new(reservation.MockEventPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mockRepo, mockPub, reservation.NewReservationService(mockRepo, mockPub, logger)
}

func TestReservationService_AddReservation(t *testing.T) {
	ctx := context.Background()
	startAt := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(r *reservation.Reservation) bool {
			ok := r.CustomerID == 4 && r.NumGuests == 3 && r.StartAt.Equal(startAt) && r.Notes == "birthday"
			if ok {
				r.ReservationID = 11
			}
			return ok
		})).Return(nil).Once()
		mockPub.On("PublishReservationCreated", ctx, mock.MatchedBy(func(e event.ReservationCreatedEvent) bool {
			return e.Payload.ReservationID == 11 && e.Payload.CustomerID == 4
		})).Return(nil).Once()

		res, err := service.AddReservation(ctx, 4, startAt, 3, "birthday")
		require.NoError(t, err)
		assert.Equal(t, int64(11), res.ReservationID)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("Invalid guests", func(t *testing.T) {
		mockRepo, _, service := setupTest()

		res, err := service.AddReservation(ctx, 4, startAt, 0, "")
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Repository failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("Save", ctx, mock.Anything).Return(apperrors.ErrDatabase).Once()

		_, err := service.AddReservation(ctx, 4, startAt, 2, "")
		assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	})

	t.Run("Publish failure is only logged", func(t *testing.T) {
		mockRepo, mockPub, service := setupTest()
		mockRepo.On("Save", ctx, mock.Anything).Return(nil).Once()
		mockPub.On("PublishReservationCreated", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		res, err := service.AddReservation(ctx, 4, startAt, 2, "")
		require.NoError(t, err)
		assert.NotNil(t, res)
	})
}

func TestReservationService_ListForCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		expected := []*reservation.Reservation{{ReservationID: 1, CustomerID: 4, NumGuests: 2}}
		mockRepo.On("GetReservationsForCustomer", ctx, int64(4)).Return(expected, nil).Once()

		result, err := service.ListForCustomer(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("Failure", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("GetReservationsForCustomer", ctx, int64(4)).Return(nil, apperrors.ErrDatabase).Once()

		_, err := service.ListForCustomer(ctx, 4)
		assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	})
}
