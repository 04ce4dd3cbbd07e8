package service

import (
	"errors"
	"fmt"

	"storefront-order-service/internal/repository"
)

// Errores de negocio exportados (los usa el controller)
var (
	ErrNotFound      = repository.ErrNotFound
	ErrStorage       = repository.ErrStorage
	ErrInvalidID     = errors.New("id de orden inválido")
	ErrInvalidStatus = errors.New("estado inválido")
	ErrFinalState    = errors.New("no se puede cambiar el estado de una orden en estado final")
)

// ValidationError indica un campo obligatorio ausente o mal formado.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
