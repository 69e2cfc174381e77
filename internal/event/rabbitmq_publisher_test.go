package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func newTestPublisher(ch amqpChannel, openErr error) *RabbitMQEventPublisher {
	return &RabbitMQEventPublisher{
		openChannel: func() (amqpChannel, error) {
			if openErr != nil {
				return nil, openErr
			}
			return ch, nil
		},
		exchangeName: "lunchly",
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewRabbitMQEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRabbitMQEventPublisher(nil, "lunchly", logger)
	assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
}

func TestPublishCustomerCreated(t *testing.T) {
	ctx := context.Background()
	ch := new(MockChannel)
	pub := newTestPublisher(ch, nil)

	evt := CustomerCreatedEvent{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:   CustomerEventPayload{CustomerID: 9, FirstName: "Alice", LastName: "Zed"},
	}

	ch.On("PublishWithContext", ctx, "lunchly", routingKeyCustomerCreated, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var decoded CustomerCreatedEvent
			if err := json.Unmarshal(msg.Body, &decoded); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				msg.AppId == publisherAppID &&
				msg.MessageId != "" &&
				decoded.Payload.CustomerID == 9 &&
				decoded.Payload.LastName == "Zed"
		})).Return(nil).Once()
	ch.On("Close").Return(nil).Once()

	require.NoError(t, pub.PublishCustomerCreated(ctx, evt))
	ch.AssertExpectations(t)
}

func TestPublishReservationCreatedFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("channel cannot be opened", func(t *testing.T) {
		pub := newTestPublisher(nil, errors.New("connection closed"))

		err := pub.PublishReservationCreated(ctx, ReservationCreatedEvent{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open channel")
	})

	t.Run("broker rejects publish", func(t *testing.T) {
		ch := new(MockChannel)
		pub := newTestPublisher(ch, nil)
		ch.On("PublishWithContext", ctx, "lunchly", routingKeyReservationCreated, false, false, mock.Anything).
			Return(errors.New("channel/connection is not open")).Once()
		ch.On("Close").Return(nil).Once()

		err := pub.PublishReservationCreated(ctx, ReservationCreatedEvent{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish message")
		ch.AssertExpectations(t)
	})
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.NoError(t, pub.PublishCustomerCreated(ctx, CustomerCreatedEvent{}))
	assert.NoError(t, pub.PublishCustomerUpdated(ctx, CustomerUpdatedEvent{}))
	assert.NoError(t, pub.PublishReservationCreated(ctx, ReservationCreatedEvent{}))
}
