package reservation

import (
	"context"

	"lunchly/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (_m *MockReservationRepository) GetReservationsForCustomer(ctx context.Context, customerID int64) ([]*Reservation, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Reservation)
	}

	return r0, ret.Error(1)
}

func (_m *MockReservationRepository) Save(ctx context.Context, reservation *Reservation) error {
	ret := _m.Called(ctx, reservation)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Reservation) error); ok {
		r0 = rf(ctx, reservation)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ Repository = (*MockReservationRepository)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishReservationCreated(ctx context.Context, evt event.ReservationCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}
