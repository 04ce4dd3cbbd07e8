package model

import "errors"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
	// PaymentRefunded solo se acepta donde la configuración lo permite.
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentBanking PaymentMethod = "banking"
)

var (
	ErrUnknownOrderStatus   = errors.New("estado de orden inválido")
	ErrUnknownPaymentStatus = errors.New("estado de pago inválido")
	ErrUnknownPaymentMethod = errors.New("método de pago inválido")
)

// Estados válidos (única fuente para todo el servicio).
var orderStatuses = map[OrderStatus]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderShipped:    true,
	OrderDelivered:  true,
	OrderCancelled:  true,
}

var paymentStatuses = map[PaymentStatus]bool{
	PaymentPending: true,
	PaymentPaid:    true,
	PaymentFailed:  true,
}

var paymentMethods = map[PaymentMethod]bool{
	PaymentCOD:     true,
	PaymentBanking: true,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !orderStatuses[st] {
		return "", ErrUnknownOrderStatus
	}
	return st, nil
}

// ParsePaymentStatus valida contra {pending, paid, failed}; refunded se
// acepta solo con allowRefunded.
func ParsePaymentStatus(s string, allowRefunded bool) (PaymentStatus, error) {
	st := PaymentStatus(s)
	if paymentStatuses[st] || (allowRefunded && st == PaymentRefunded) {
		return st, nil
	}
	return "", ErrUnknownPaymentStatus
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !paymentMethods[m] {
		return "", ErrUnknownPaymentMethod
	}
	return m, nil
}

func (s OrderStatus) Valid() bool { return orderStatuses[s] }

// IsFinal indica los estados finales usados por el guard opcional.
func (s OrderStatus) IsFinal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s PaymentStatus) Valid() bool { return paymentStatuses[s] }

func (m PaymentMethod) Valid() bool { return paymentMethods[m] }
