package service

import (
	"context"
	"strings"

	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/metrics"
	"storefront-order-service/internal/model"
	"storefront-order-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interfaz que debe implementar repository
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error)
	FindAll(ctx context.Context, f repository.Filter, p repository.Page) ([]*model.Order, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, p model.OrderPatch) (*model.Order, error)
	SetFields(ctx context.Context, id primitive.ObjectID, p model.OrderPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Options struct {
	// RecomputeTotal guarda la suma calculada en vez del total del cliente.
	RecomputeTotal bool
	// StatusGuard impide salir de delivered/cancelled.
	StatusGuard bool
}

type OrderService struct {
	repo OrderRepository
	pub  Publisher
	opts Options
}

func NewOrderService(r OrderRepository, pub Publisher, opts Options) *OrderService {
	if pub == nil {
		pub = NoopPublisher()
	}
	return &OrderService{repo: r, pub: pub, opts: opts}
}

func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// La dirección se guarda tal como llega; Complete decide si sirve.
func dtoToModelShipping(in dto.ShippingAddressDTO) model.ShippingAddress {
	return model.ShippingAddress{
		FullName:   in.FullName,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		Phone:      in.Phone,
	}
}

func dtoToModelItems(in []dto.OrderItemDTO) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(in))
	for _, it := range in {
		if strings.TrimSpace(it.Product) == "" {
			return nil, invalid("items", "falta el producto del item")
		}
		if strings.TrimSpace(it.Name) == "" {
			return nil, invalid("items", "falta el nombre del item")
		}
		if it.Quantity <= 0 {
			return nil, invalid("items", "la cantidad debe ser un entero positivo")
		}
		if it.Price < 0 {
			return nil, invalid("items", "el precio no puede ser negativo")
		}
		items = append(items, model.OrderItem{
			Product:  it.Product,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}
	return items, nil
}

// CreateOrder arma la orden a partir del carrito y el formulario de envío.
// IMPORTANTE: fuerza orderStatus y paymentStatus a "pending" (siempre).
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	log := logger.WithCtx(ctx)

	var user primitive.ObjectID
	if req.User != "" {
		oid, err := primitive.ObjectIDFromHex(req.User)
		if err != nil {
			return nil, invalid("user", "id de usuario inválido")
		}
		user = oid
	}

	if len(req.Items) == 0 {
		return nil, invalid("items", "campo obligatorio")
	}
	items, err := dtoToModelItems(req.Items)
	if err != nil {
		return nil, err
	}

	computed := model.ItemsTotal(items)
	total := req.TotalAmount
	if s.opts.RecomputeTotal {
		total = computed
	} else if total <= 0 {
		return nil, invalid("totalAmount", "campo obligatorio")
	}
	if total <= 0 {
		return nil, invalid("totalAmount", "debe ser mayor que cero")
	}
	if req.TotalAmount != 0 && !model.SameAmount(req.TotalAmount, computed) {
		// Se guarda igual el total del cliente salvo RECOMPUTE_TOTAL.
		log.Warn("order total does not match items", "client_total", req.TotalAmount, "items_total", computed, "recomputed", s.opts.RecomputeTotal)
	}

	shipping := dtoToModelShipping(req.ShippingAddress)
	if !shipping.Complete() {
		return nil, invalid("shippingAddress", "fullName, address, city, postalCode y phone son obligatorios")
	}

	method := model.PaymentCOD
	if req.PaymentMethod != "" {
		m, err := model.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, invalid("paymentMethod", err.Error())
		}
		method = m
	}

	o := &model.Order{
		User:            user,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentPending,
		OrderStatus:     model.OrderPending,
		Note:            req.Note,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(string(method)).Inc()
	log.Info("order created", "order_id", o.ID.Hex(), "user_id", req.User, "total", o.TotalAmount, "items", len(o.Items))
	s.publish(ctx, newEvent(EventOrderCreated, o))
	return o, nil
}

// Getters
func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *OrderService) GetByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, invalid("user", "id de usuario inválido")
	}
	return s.repo.FindByUser(ctx, oid)
}

func (s *OrderService) GetAll(ctx context.Context, q dto.ListOrdersQuery) ([]*model.Order, error) {
	var f repository.Filter
	if q.OrderStatus != "" {
		st, err := model.ParseOrderStatus(q.OrderStatus)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		f.OrderStatus = st
	}
	return s.repo.FindAll(ctx, f, repository.Page{Limit: q.Limit, Skip: q.Skip})
}

// UpdateOrder aplica solo los campos presentes en el request. Es el camino
// genérico: no recalcula totalAmount ni aplica el guard de estados.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req dto.UpdateOrderRequest) (*model.Order, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var p model.OrderPatch
	if req.Items != nil {
		if len(*req.Items) == 0 {
			return nil, invalid("items", "no puede estar vacío")
		}
		items, err := dtoToModelItems(*req.Items)
		if err != nil {
			return nil, err
		}
		p.Items = &items
	}
	// un total <= 0 cuenta como ausente, igual que los enums vacíos
	if req.TotalAmount != nil && *req.TotalAmount > 0 {
		p.TotalAmount = req.TotalAmount
	}
	if req.ShippingAddress != nil {
		shipping := dtoToModelShipping(*req.ShippingAddress)
		if !shipping.Complete() {
			return nil, invalid("shippingAddress", "fullName, address, city, postalCode y phone son obligatorios")
		}
		p.ShippingAddress = &shipping
	}
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		m, err := model.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return nil, invalid("paymentMethod", err.Error())
		}
		p.PaymentMethod = &m
	}
	if req.PaymentStatus != nil && *req.PaymentStatus != "" {
		st, err := model.ParsePaymentStatus(*req.PaymentStatus, false)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		p.PaymentStatus = &st
	}
	if req.OrderStatus != nil && *req.OrderStatus != "" {
		st, err := model.ParseOrderStatus(*req.OrderStatus)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		p.OrderStatus = &st
	}
	p.Note = req.Note

	if p.Empty() {
		return s.repo.FindByID(ctx, oid)
	}

	o, err := s.repo.UpdateFields(ctx, oid, p)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, newEvent(EventOrderUpdated, o))
	return o, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("order deleted", "order_id", oid.Hex())
	s.publish(ctx, newEvent(EventOrderDeleted, &model.Order{ID: oid}))
	return nil
}
