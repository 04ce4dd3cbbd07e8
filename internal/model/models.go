// models.go
package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order es el documento persistido en la colección "orders".
// Los items son una foto del carrito al momento de la compra.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus     OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	Note            string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem.Product es la referencia al catálogo tal como llega; no se valida
// contra ninguna colección.
type OrderItem struct {
	Product  string  `bson:"product" json:"product"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Image    string  `bson:"image" json:"image"`
}

// ShippingAddress pertenece a la orden, no se comparte con otras entidades.
type ShippingAddress struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Phone      string `bson:"phone" json:"phone"`
}

// Complete exige los cinco campos con algo más que espacios.
func (a ShippingAddress) Complete() bool {
	for _, f := range []string{a.FullName, a.Address, a.City, a.PostalCode, a.Phone} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// ItemsTotal suma price*quantity de los items.
func ItemsTotal(items []OrderItem) float64 {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Price: it.Price, Quantity: it.Quantity}
	}
	return SumLines(lines)
}
