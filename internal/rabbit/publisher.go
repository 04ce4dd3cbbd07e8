package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-order-service/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

const EventsExchange = "order_events"

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher publica los eventos de órdenes en un exchange fanout.
type Publisher struct {
	ch       amqpPublisher
	exchange string
}

// NewPublisher declara el exchange y devuelve el publisher.
func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(EventsExchange, amqp091.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &Publisher{ch: ch, exchange: EventsExchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev service.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	// fanout ignora la routing key; se manda el tipo igual para los logs del broker
	return p.ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
}
