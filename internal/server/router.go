package server

import (
	"net/http"

	"storefront-order-service/internal/cart"
	"storefront-order-service/internal/controller"
	"storefront-order-service/internal/metrics"
	"storefront-order-service/internal/middleware"
	"storefront-order-service/internal/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Orders *service.OrderService
	Cart   *cart.Service
	Auth   *service.AuthService

	AdminAuth     bool
	AllowRefunded bool
}

func NewRouter(d Deps) *gin.Engine {
	controller.RegisterValidators()

	orders := controller.NewOrderController(d.Orders, d.Auth, d.AllowRefunded)
	carts := controller.NewCartController(d.Cart)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rutas del storefront
	r.POST("/orders", orders.CreateOrder)
	r.GET("/orders/user", orders.GetMyOrders)
	r.GET("/orders/:id", orders.GetOrder)

	// Rutas admin (abiertas salvo ADMIN_AUTH)
	admin := r.Group("/orders")
	if d.AdminAuth {
		admin.Use(middleware.AuthMiddleware(d.Auth), middleware.AdminOnly())
	}
	admin.GET("", orders.GetAllOrders)
	admin.PUT("/:id", orders.UpdateOrder)
	admin.DELETE("/:id", orders.DeleteOrder)
	admin.PUT("/:id/order-status", orders.UpdateOrderStatus)
	admin.PUT("/:id/payment-status", orders.UpdatePaymentStatus)
	admin.PUT("/:id/status", orders.UpdateStatuses)

	// Carrito (requiere token)
	cg := r.Group("/cart", middleware.AuthMiddleware(d.Auth))
	cg.GET("", carts.GetCart)
	cg.DELETE("", carts.Clear)
	cg.POST("/items", carts.AddItem)
	cg.PUT("/items/:productId", carts.SetQuantity)
	cg.DELETE("/items/:productId", carts.RemoveItem)
	cg.POST("/checkout", carts.Checkout)

	return r
}
