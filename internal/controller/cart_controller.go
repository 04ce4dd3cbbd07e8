package controller

import (
	"net/http"

	"storefront-order-service/internal/cart"
	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CartController requiere AuthMiddleware: el carrito es por usuario.
type CartController struct {
	Cart *cart.Service
}

func NewCartController(s *cart.Service) *CartController {
	return &CartController{Cart: s}
}

// GET /cart
func (ctl *CartController) GetCart(c *gin.Context) {
	ct, err := ctl.Cart.Get(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// POST /cart/items
func (ctl *CartController) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ct, err := ctl.Cart.AddItem(c.Request.Context(), c.GetString(middleware.CtxUserID), cart.Item{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// PUT /cart/items/:productId
func (ctl *CartController) SetQuantity(c *gin.Context) {
	var req dto.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ct, err := ctl.Cart.SetQuantity(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("productId"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// DELETE /cart/items/:productId
func (ctl *CartController) RemoveItem(c *gin.Context) {
	ct, err := ctl.Cart.RemoveItem(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(ct))
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Cart.Clear(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "cart cleared"})
}

// POST /cart/checkout
func (ctl *CartController) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := ctl.Cart.Checkout(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func cartResponse(ct *cart.Cart) gin.H {
	return gin.H{
		"userId":      ct.UserID,
		"items":       ct.Items,
		"totalAmount": ct.Total(),
		"updatedAt":   ct.UpdatedAt,
	}
}
