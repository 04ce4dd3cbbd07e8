package model

// OrderPatch es una actualización parcial; nil significa "no tocar".
type OrderPatch struct {
	Items           *[]OrderItem
	TotalAmount     *float64
	ShippingAddress *ShippingAddress
	PaymentMethod   *PaymentMethod
	PaymentStatus   *PaymentStatus
	OrderStatus     *OrderStatus
	Note            *string
}

func (p OrderPatch) Empty() bool {
	return p.Items == nil && p.TotalAmount == nil && p.ShippingAddress == nil &&
		p.PaymentMethod == nil && p.PaymentStatus == nil && p.OrderStatus == nil && p.Note == nil
}

// Apply copia los campos presentes sobre o.
func (p OrderPatch) Apply(o *Order) {
	if p.Items != nil {
		o.Items = append([]OrderItem(nil), (*p.Items)...)
	}
	if p.TotalAmount != nil {
		o.TotalAmount = *p.TotalAmount
	}
	if p.ShippingAddress != nil {
		o.ShippingAddress = *p.ShippingAddress
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentStatus != nil {
		o.PaymentStatus = *p.PaymentStatus
	}
	if p.OrderStatus != nil {
		o.OrderStatus = *p.OrderStatus
	}
	if p.Note != nil {
		o.Note = *p.Note
	}
}
