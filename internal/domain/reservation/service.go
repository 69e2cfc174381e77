package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lunchly/internal/event"
	"lunchly/internal/infrastructure/monitoring"
)

type ReservationService interface {
	AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*Reservation, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error)
}

var _ ReservationService = (*reservationService)(nil)

type reservationService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewReservationService(repo Repository, eventPublisher event.EventPublisher, logger *slog.Logger) ReservationService {
	if repo == nil {
		panic("reservation repository cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if eventPublisher == nil {
		eventPublisher = event.NewNoopPublisher(logger)
	}
	return &reservationService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "reservationService")),
	}
}

func (s *reservationService) AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*Reservation, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to add reservation")

	res, err := NewReservation(customerID, startAt, numGuests, notes)
	if err != nil {
		logger.WarnContext(ctx, "Validation failed for new reservation", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, res); err != nil {
		logger.ErrorContext(ctx, "Repository failed to save reservation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}
	monitoring.RecordReservationCreated()

	createdEvent := event.ReservationCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.ReservationEventPayload{
			ReservationID: res.ReservationID,
			CustomerID:    res.CustomerID,
			StartAt:       res.StartAt,
			NumGuests:     res.NumGuests,
		},
	}
	if pubErr := s.pub.PublishReservationCreated(ctx, createdEvent); pubErr != nil {
		logger.ErrorContext(ctx, "Reservation created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully added reservation", slog.Int64("reservationID", res.ReservationID))
	return res, nil
}

func (s *reservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error) {
	reservations, err := s.repo.GetReservationsForCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing reservations", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list reservations for customer %d: %w", customerID, err)
	}
	return reservations, nil
}
