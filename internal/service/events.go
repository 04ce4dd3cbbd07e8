package service

import (
	"context"
	"time"

	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/model"

	"github.com/google/uuid"
)

const (
	EventOrderCreated         = "order.created"
	EventOrderUpdated         = "order.updated"
	EventOrderDeleted         = "order.deleted"
	EventOrderStatusChanged   = "order.status_changed"
	EventPaymentStatusChanged = "order.payment_status_changed"
)

// Event es el mensaje publicado cuando cambia una orden.
type Event struct {
	EventID       string              `json:"eventId"`
	Type          string              `json:"type"`
	OrderID       string              `json:"orderId"`
	UserID        string              `json:"userId,omitempty"`
	OrderStatus   model.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus,omitempty"`
	OccurredAt    time.Time           `json:"occurredAt"`
}

// Publisher lo implementa rabbit; en tests se usa un fake.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func NoopPublisher() Publisher { return noopPublisher{} }

func newEvent(typ string, o *model.Order) Event {
	ev := Event{
		EventID:       uuid.NewString(),
		Type:          typ,
		OrderID:       o.ID.Hex(),
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}
	if !o.User.IsZero() {
		ev.UserID = o.User.Hex()
	}
	return ev
}

// publish no falla la operación: la escritura ya quedó hecha.
func (s *OrderService) publish(ctx context.Context, ev Event) {
	if err := s.pub.Publish(ctx, ev); err != nil {
		logger.WithCtx(ctx).Warn("event publish failed", "type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}
