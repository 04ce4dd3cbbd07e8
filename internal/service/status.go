package service

import (
	"context"

	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/metrics"
	"storefront-order-service/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetOrderStatus cambia solo orderStatus. Sin guard cualquier estado puede
// pasar a cualquier otro (incluye volver atrás y repetir el mismo).
func (s *OrderService) SetOrderStatus(ctx context.Context, id string, status string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	st, err := model.ParseOrderStatus(status)
	if err != nil {
		return ErrInvalidStatus
	}
	if err := s.checkTransition(ctx, oid, st); err != nil {
		return err
	}

	if err := s.repo.SetFields(ctx, oid, model.OrderPatch{OrderStatus: &st}); err != nil {
		return err
	}

	metrics.StatusChanges.WithLabelValues("orderStatus", string(st)).Inc()
	logger.WithCtx(ctx).Info("order status updated", "order_id", oid.Hex(), "order_status", st)
	s.publish(ctx, newEvent(EventOrderStatusChanged, &model.Order{ID: oid, OrderStatus: st}))
	return nil
}

// SetPaymentStatus cambia solo paymentStatus. allowRefunded lo decide quien
// llama (la ruta /payment-status según configuración).
func (s *OrderService) SetPaymentStatus(ctx context.Context, id string, status string, allowRefunded bool) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	st, err := model.ParsePaymentStatus(status, allowRefunded)
	if err != nil {
		return ErrInvalidStatus
	}

	if err := s.repo.SetFields(ctx, oid, model.OrderPatch{PaymentStatus: &st}); err != nil {
		return err
	}

	metrics.StatusChanges.WithLabelValues("paymentStatus", string(st)).Inc()
	logger.WithCtx(ctx).Info("payment status updated", "order_id", oid.Hex(), "payment_status", st)
	s.publish(ctx, newEvent(EventPaymentStatusChanged, &model.Order{ID: oid, PaymentStatus: st}))
	return nil
}

// SetStatuses actualiza uno o ambos estados en una sola escritura. Los dos
// valores se validan contra los conjuntos estrictos.
func (s *OrderService) SetStatuses(ctx context.Context, id string, orderStatus, paymentStatus string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	if orderStatus == "" && paymentStatus == "" {
		return invalid("status", "se requiere orderStatus o paymentStatus")
	}

	var p model.OrderPatch
	if orderStatus != "" {
		st, err := model.ParseOrderStatus(orderStatus)
		if err != nil {
			return ErrInvalidStatus
		}
		if err := s.checkTransition(ctx, oid, st); err != nil {
			return err
		}
		p.OrderStatus = &st
	}
	if paymentStatus != "" {
		st, err := model.ParsePaymentStatus(paymentStatus, false)
		if err != nil {
			return ErrInvalidStatus
		}
		p.PaymentStatus = &st
	}

	if err := s.repo.SetFields(ctx, oid, p); err != nil {
		return err
	}

	ev := &model.Order{ID: oid}
	if p.OrderStatus != nil {
		ev.OrderStatus = *p.OrderStatus
		metrics.StatusChanges.WithLabelValues("orderStatus", string(ev.OrderStatus)).Inc()
		s.publish(ctx, newEvent(EventOrderStatusChanged, ev))
	}
	if p.PaymentStatus != nil {
		ev.PaymentStatus = *p.PaymentStatus
		metrics.StatusChanges.WithLabelValues("paymentStatus", string(ev.PaymentStatus)).Inc()
		s.publish(ctx, newEvent(EventPaymentStatusChanged, ev))
	}
	logger.WithCtx(ctx).Info("order statuses updated", "order_id", oid.Hex(), "order_status", orderStatus, "payment_status", paymentStatus)
	return nil
}

// checkTransition solo actúa con StatusGuard. Repetir el mismo estado
// siempre se permite.
func (s *OrderService) checkTransition(ctx context.Context, oid primitive.ObjectID, next model.OrderStatus) error {
	if !s.opts.StatusGuard {
		return nil
	}
	o, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if o.OrderStatus != next && o.OrderStatus.IsFinal() {
		return ErrFinalState
	}
	return nil
}
