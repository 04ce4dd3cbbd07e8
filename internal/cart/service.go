package cart

import (
	"context"

	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/metrics"
	"storefront-order-service/internal/model"
)

// OrderCreator es el servicio de órdenes visto desde el carrito.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error)
}

type Service struct {
	store  Store
	orders OrderCreator
}

func NewService(store Store, orders OrderCreator) *Service {
	return &Service{store: store, orders: orders}
}

func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	return s.store.Get(ctx, userID)
}

func (s *Service) AddItem(ctx context.Context, userID string, it Item) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error { return c.Add(it) })
}

func (s *Service) SetQuantity(ctx context.Context, userID, productID string, qty int) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error { return c.SetQuantity(productID, qty) })
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error { return c.Remove(productID) })
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

func (s *Service) mutate(ctx context.Context, userID string, fn func(*Cart) error) (*Cart, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Checkout crea la orden con una foto del carrito. El carrito se vacía solo
// si la orden se creó; si falla queda intacto para reintentar.
func (s *Service) Checkout(ctx context.Context, userID string, form dto.CheckoutRequest) (*model.Order, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		metrics.CartCheckouts.WithLabelValues("empty").Inc()
		return nil, ErrEmptyCart
	}

	req := dto.CreateOrderRequest{
		User:            userID,
		Items:           ToOrderItems(c.Snapshot()),
		TotalAmount:     c.Total(),
		ShippingAddress: form.ShippingAddress,
		PaymentMethod:   form.PaymentMethod,
		Note:            form.Note,
	}
	o, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		metrics.CartCheckouts.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		// La orden ya existe; un carrito sin limpiar no es motivo de error.
		logger.WithCtx(ctx).Warn("cart not cleared after checkout", "user_id", userID, "order_id", o.ID.Hex(), "error", err)
	}
	metrics.CartCheckouts.WithLabelValues("ok").Inc()
	return o, nil
}

// ToOrderItems convierte las líneas del carrito al formato de la orden.
func ToOrderItems(items []Item) []dto.OrderItemDTO {
	out := make([]dto.OrderItemDTO, len(items))
	for i, it := range items {
		out[i] = dto.OrderItemDTO{
			Product:  it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}
	return out
}
