// Package events publishes domain events after a transaction commits.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrders   = "order_events"
	TopicPayments = "payment_events"
)

const (
	TypeOrderCreated    = "order_created"
	TypePaymentCaptured = "payment_captured"
	TypePaymentFailed   = "payment_failed"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type OrderCreated struct {
	Type          string    `json:"type"`
	OrderID       uuid.UUID `json:"order_id"`
	UserID        uuid.UUID `json:"user_id"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Items         int       `json:"items"`
	At            time.Time `json:"at"`
}

type PaymentChanged struct {
	Type           string    `json:"type"`
	PaymentID      uuid.UUID `json:"payment_id"`
	OrderID        uuid.UUID `json:"order_id"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	GatewayOrderID string    `json:"gateway_order_id,omitempty"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	Reason         string    `json:"reason,omitempty"`
	Source         string    `json:"source"`
	At             time.Time `json:"at"`
}

// New returns a Kafka publisher, or a no-op one when no brokers are set.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(brokers)
}

type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }

type Message struct {
	Topic string
	Key   string
	Event any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}
