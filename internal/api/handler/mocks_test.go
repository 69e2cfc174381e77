package handler_test

import (
	"context"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"

	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (_m *MockCustomerService) customerResult(ret mock.Arguments) (*customer.Customer, error) {
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) listResult(ret mock.Arguments) ([]*customer.Customer, error) {
	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, customerID))
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	return _m.listResult(_m.Called(ctx))
}

func (_m *MockCustomerService) SearchCustomers(ctx context.Context, query string) ([]*customer.Customer, error) {
	return _m.listResult(_m.Called(ctx, query))
}

func (_m *MockCustomerService) BestCustomers(ctx context.Context) ([]*customer.Customer, error) {
	return _m.listResult(_m.Called(ctx))
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, firstName, lastName, phone, notes string) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, firstName, lastName, phone, notes))
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, phone, notes string) (*customer.Customer, error) {
	return _m.customerResult(_m.Called(ctx, customerID, firstName, lastName, phone, notes))
}

func (_m *MockCustomerService) GetCustomerReservations(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*reservation.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*reservation.Reservation)
	}
	return r0, ret.Error(1)
}

type MockReservationService struct {
	mock.Mock
}

var _ reservation.ReservationService = (*MockReservationService)(nil)

func (_m *MockReservationService) AddReservation(ctx context.Context, customerID int64, startAt time.Time, numGuests int, notes string) (*reservation.Reservation, error) {
	ret := _m.Called(ctx, customerID, startAt, numGuests, notes)

	var r0 *reservation.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*reservation.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *MockReservationService) ListForCustomer(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*reservation.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*reservation.Reservation)
	}
	return r0, ret.Error(1)
}
