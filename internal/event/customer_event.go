package event

import (
	"context"
	"time"
)

type CustomerEventPayload struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type ReservationEventPayload struct {
	ReservationID int64     `json:"reservationId"`
	CustomerID    int64     `json:"customerId"`
	StartAt       time.Time `json:"startAt"`
	NumGuests     int       `json:"numGuests"`
}

type ReservationCreatedEvent struct {
	Timestamp time.Time               `json:"timestamp"`
	Payload   ReservationEventPayload `json:"payload"`
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, routingKeyCustomerCreated, event)
}

func (p *RabbitMQEventPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	return p.publish(ctx, routingKeyCustomerUpdated, event)
}

func (p *RabbitMQEventPublisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	return p.publish(ctx, routingKeyReservationCreated, event)
}
