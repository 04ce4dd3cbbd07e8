// dto.go
package dto

// CreateOrderRequest es el cuerpo de POST /orders y del mensaje de checkout.
// orderStatus / paymentStatus no se declaran: al crear siempre son "pending".
type CreateOrderRequest struct {
	User            string             `json:"user"`
	Items           []OrderItemDTO     `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	ShippingAddress ShippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Note            string             `json:"note"`
}

type OrderItemDTO struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

type ShippingAddressDTO struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// UpdateOrderRequest (PUT /orders/:id). Solo se aplican los campos presentes.
type UpdateOrderRequest struct {
	Items           *[]OrderItemDTO     `json:"items"`
	TotalAmount     *float64            `json:"totalAmount"`
	ShippingAddress *ShippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   *string             `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	PaymentStatus   *string             `json:"paymentStatus" binding:"omitempty,paymentstatus"`
	OrderStatus     *string             `json:"orderStatus" binding:"omitempty,orderstatus"`
	Note            *string             `json:"note"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// UpdateStatusesRequest (PUT /orders/:id/status): al menos uno de los dos.
type UpdateStatusesRequest struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

type ListOrdersQuery struct {
	Limit       int64  `form:"limit" binding:"omitempty,min=0"`
	Skip        int64  `form:"skip" binding:"omitempty,min=0"`
	OrderStatus string `form:"orderStatus" binding:"omitempty,orderstatus"`
}

type AddCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest es el formulario de envío; los items salen del carrito.
type CheckoutRequest struct {
	ShippingAddress ShippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Note            string             `json:"note"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
