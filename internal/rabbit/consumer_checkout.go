package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/model"
	"storefront-order-service/internal/service"
)

// errBadMessage marca mensajes que no tiene sentido reencolar.
var errBadMessage = errors.New("mensaje de checkout inválido")

type OrderCreator interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error)
}

type CheckoutConsumer struct {
	Orders OrderCreator
}

func NewCheckoutConsumer(o OrderCreator) *CheckoutConsumer {
	return &CheckoutConsumer{Orders: o}
}

// CheckoutMessage es el evento que emite el storefront al confirmar el
// carrito. El sobre es el mismo que usan los otros servicios.
type CheckoutMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		UserID          string                 `json:"userId"`
		Items           []dto.OrderItemDTO     `json:"items"`
		TotalAmount     float64                `json:"totalAmount"`
		ShippingAddress dto.ShippingAddressDTO `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
		Note            string                 `json:"note"`
	} `json:"message"`
}

func (c *CheckoutConsumer) Handle(ctx context.Context, msg []byte) (*model.Order, error) {
	var event CheckoutMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadMessage, err)
	}
	if event.Message.UserID == "" {
		return nil, fmt.Errorf("%w: falta userId", errBadMessage)
	}

	log := logger.WithCtx(ctx).With("correlation_id", event.CorrelationID)
	o, err := c.Orders.CreateOrder(ctx, dto.CreateOrderRequest{
		User:            event.Message.UserID,
		Items:           event.Message.Items,
		TotalAmount:     event.Message.TotalAmount,
		ShippingAddress: event.Message.ShippingAddress,
		PaymentMethod:   event.Message.PaymentMethod,
		Note:            event.Message.Note,
	})
	if err != nil {
		log.Error("checkout message rejected", "error", err)
		return nil, err
	}

	log.Info("order created from checkout message", "order_id", o.ID.Hex())
	return o, nil
}

// requeue: solo los errores transitorios (almacenamiento) vuelven a la cola.
func requeue(err error) bool {
	var verr *service.ValidationError
	if errors.Is(err, errBadMessage) || errors.As(err, &verr) {
		return false
	}
	return errors.Is(err, service.ErrStorage)
}
