package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"lunchly/internal/domain/reservation"
	"lunchly/internal/event"
	"lunchly/internal/infrastructure/monitoring"
	"lunchly/internal/pkg/apperrors"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]*Customer, error)
	BestCustomers(ctx context.Context) ([]*Customer, error)
	CreateCustomer(ctx context.Context, firstName, lastName, phone, notes string) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone, notes string) (*Customer, error)
	GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NewNoopPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.CustomerID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Phone:      cust.Phone,
		Notes:      cust.Notes,
	}
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to get customer by ID")

	if customerID <= 0 {
		logger.WarnContext(ctx, "Validation failed: customer ID must be positive")
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	customer, err := s.repo.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, err
		}

		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.All(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

// SearchCustomers matches every word of query against the name index. A blank
// query lists all customers.
func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]*Customer, error) {
	tsQuery := buildTokenQuery(query)
	if tsQuery == "" {
		s.logger.InfoContext(ctx, "Empty search query, listing all customers")
		return s.ListCustomers(ctx)
	}

	logger := s.logger.With(slog.String("tsquery", tsQuery))
	logger.InfoContext(ctx, "Attempting to search customers by name")

	customers, err := s.repo.SearchByName(ctx, tsQuery)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error searching customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	logger.InfoContext(ctx, "Search finished", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) BestCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list best customers")

	customers, err := s.repo.BestCustomers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing best customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list best customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved best customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, firstName, lastName, phone, notes string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	customer := NewCustomer(firstName, lastName, phone, notes)
	if err := customer.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}
	s.logger.InfoContext(ctx, inputValidationPassed)

	if err := s.repo.Save(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger := s.logger.With(slog.Int64("customerID", customer.CustomerID))
	monitoring.RecordCustomerCreated()

	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	} else {
		logger.InfoContext(ctx, "Successfully published customer creation event")
	}

	logger.InfoContext(ctx, "Successfully created new customer")
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone, notes string) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated := NewCustomer(firstName, lastName, phone, notes)
	if err := updated.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}
	logger.InfoContext(ctx, inputValidationPassed)

	customer.FirstName = updated.FirstName
	customer.LastName = updated.LastName
	customer.Phone = updated.Phone
	customer.Notes = updated.Notes

	if err := s.repo.Save(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.ErrorContext(ctx, "Customer disappeared before save completed")
			return nil, err
		}
		logger.ErrorContext(ctx, "Repository failed to save customer update", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save customer %d: %w", customerID, err)
	}
	monitoring.RecordCustomerUpdated()

	updatedEvent := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updatedEvent); pubErr != nil {
		logger.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.GetReservations(ctx, customer)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing reservations", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get reservations for customer %d: %w", customerID, err)
	}
	return reservations, nil
}

// buildTokenQuery turns free text into a to_tsquery expression that requires
// every word. Characters with meaning in tsquery syntax are dropped.
func buildTokenQuery(query string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '&', '|', '!', '(', ')', ':', '*', '\'', '\\', '<', '>':
			return ' '
		}
		return r
	}, query)

	return strings.Join(strings.Fields(cleaned), " & ")
}
