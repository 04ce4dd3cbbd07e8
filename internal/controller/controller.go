package controller

import (
	"net/http"

	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/middleware"
	"storefront-order-service/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *service.OrderService
	Auth    *service.AuthService
	// AllowRefunded habilita "refunded" en PUT /orders/:id/payment-status.
	AllowRefunded bool
}

func NewOrderController(s *service.OrderService, auth *service.AuthService, allowRefunded bool) *OrderController {
	return &OrderController{Service: s, Auth: auth, AllowRefunded: allowRefunded}
}

// GET /orders
func (ctl *OrderController) GetAllOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	orders, err := ctl.Service.GetAll(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := ctl.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// GET /orders/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	o, err := ctl.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PUT /orders/:id
func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	o, err := ctl.Service.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DELETE /orders/:id
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	if err := ctl.Service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "order deleted successfully"})
}

// PUT /orders/:id/order-status
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "orderStatus is required")
		return
	}
	if err := ctl.Service.SetOrderStatus(c.Request.Context(), c.Param("id"), req.OrderStatus); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "order status updated successfully"})
}

// PUT /orders/:id/payment-status
func (ctl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := service.ParseID(id); err != nil {
		writeError(c, err)
		return
	}
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, service.ErrInvalidStatus.Error())
		return
	}
	if err := ctl.Service.SetPaymentStatus(c.Request.Context(), id, req.PaymentStatus, ctl.AllowRefunded); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "payment status updated successfully"})
}

// PUT /orders/:id/status: ambos estados a la vez, validación estricta
func (ctl *OrderController) UpdateStatuses(c *gin.Context) {
	var req dto.UpdateStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := ctl.Service.SetStatuses(c.Request.Context(), c.Param("id"), req.OrderStatus, req.PaymentStatus); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "status updated successfully"})
}

// GET /orders/user: el usuario sale del token. Un token inválido responde
// 500, igual que el storefront.
func (ctl *OrderController) GetMyOrders(c *gin.Context) {
	user, err := ctl.Auth.ValidateToken(middleware.BearerToken(c))
	if err != nil {
		logger.WithCtx(c.Request.Context()).Warn("user orders: token rejected", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching user orders"})
		return
	}
	orders, err := ctl.Service.GetByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.WithCtx(c.Request.Context()).Error("user orders failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching user orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
