// Package cart guarda el carrito de cada usuario y lo convierte en orden al
// hacer checkout.
package cart

import (
	"errors"
	"strings"
	"time"

	"storefront-order-service/internal/model"
)

var (
	ErrEmptyCart    = errors.New("el carrito está vacío")
	ErrItemNotFound = errors.New("el producto no está en el carrito")
	ErrInvalidItem  = errors.New("producto de carrito inválido")
)

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type Cart struct {
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cart) Total() float64 {
	lines := make([]model.Line, len(c.Items))
	for i, it := range c.Items {
		lines[i] = model.Line{Price: it.Price, Quantity: it.Quantity}
	}
	return model.SumLines(lines)
}

func (c *Cart) find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add suma la cantidad si el producto ya está en el carrito.
func (c *Cart) Add(it Item) error {
	if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 || it.Price < 0 {
		return ErrInvalidItem
	}
	if i := c.find(it.ProductID); i >= 0 {
		c.Items[i].Quantity += it.Quantity
		return nil
	}
	c.Items = append(c.Items, it)
	return nil
}

// SetQuantity reemplaza la cantidad; <= 0 quita la línea.
func (c *Cart) SetQuantity(productID string, qty int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if qty <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}
	c.Items[i].Quantity = qty
	return nil
}

func (c *Cart) Remove(productID string) error {
	return c.SetQuantity(productID, 0)
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

// Snapshot copia los items; los cambios posteriores al carrito no lo afectan.
func (c *Cart) Snapshot() []Item {
	return append([]Item(nil), c.Items...)
}
