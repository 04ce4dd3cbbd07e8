// setup.go
package rabbit

import (
	"context"
	"fmt"

	"storefront-order-service/internal/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	CheckoutExchange = "checkout_submitted"
	CheckoutQueue    = "order_service_checkout"
)

// SetupConsumers declara la cola, la bindea al exchange fanout de checkout y
// consume hasta que se cierre el canal o se cancele ctx.
func SetupConsumers(ctx context.Context, ch *amqp091.Channel, orders OrderCreator) error {
	consumer := NewCheckoutConsumer(orders)

	// 1. Declarar exchange y queue
	if err := ch.ExchangeDeclare(CheckoutExchange, amqp091.ExchangeFanout, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", CheckoutExchange, err)
	}
	q, err := ch.QueueDeclare(CheckoutQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", CheckoutQueue, err)
	}

	// 2. Bindear al exchange fanout
	if err := ch.QueueBind(q.Name, "", CheckoutExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", q.Name, err)
	}

	// 3. Consumir con ack manual
	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", q.Name, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					logger.L.Warn("checkout consumer channel closed")
					return
				}
				handleDelivery(ctx, consumer, m)
			}
		}
	}()

	logger.L.Info("subscribed to checkout exchange", "exchange", CheckoutExchange, "queue", q.Name)
	return nil
}

func handleDelivery(ctx context.Context, consumer *CheckoutConsumer, m amqp091.Delivery) {
	log := logger.L.With("message_id", m.MessageId)
	if _, err := consumer.Handle(logger.InjectLogger(ctx, log), m.Body); err != nil {
		if nerr := m.Nack(false, requeue(err)); nerr != nil {
			log.Error("nack failed", "error", nerr)
		}
		return
	}
	if err := m.Ack(false); err != nil {
		log.Error("ack failed", "error", err)
	}
}
