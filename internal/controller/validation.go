package controller

import (
	"sync"

	"storefront-order-service/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators agrega los tags orderstatus, paymentstatus y
// paymentmethod al validador de gin. El string vacío se deja pasar: el
// servicio lo trata como "sin cambio".
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || model.OrderStatus(s).Valid()
		})
		_ = v.RegisterValidation("paymentstatus", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || model.PaymentStatus(s).Valid()
		})
		_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || model.PaymentMethod(s).Valid()
		})
	})
}
