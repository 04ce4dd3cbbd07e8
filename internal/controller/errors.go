package controller

import (
	"errors"
	"net/http"

	"storefront-order-service/internal/cart"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError traduce errores de negocio a códigos HTTP. Los errores de
// almacenamiento se registran y se devuelven como mensaje genérico.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid fields", "details": verr.Error()})
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrFinalState),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.WithCtx(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
