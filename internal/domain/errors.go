package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Variantes con contexto. Se comparan con errors.Is contra la raíz
// (ErrNotFound, ErrInvalidInput) o contra la variante concreta.
var (
	ErrProductNotFound     = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrPartnerNotFound     = fmt.Errorf("partenaire no encontrado: %w", ErrNotFound)
	ErrClientNotFound      = fmt.Errorf("cliente no encontrado: %w", ErrNotFound)
	ErrFournisseurNotFound = fmt.Errorf("proveedor no encontrado: %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transacción no encontrada: %w", ErrNotFound)
	ErrLineNotFound        = fmt.Errorf("línea no encontrada: %w", ErrNotFound)

	ErrInvalidQuantity = fmt.Errorf("la cantidad debe ser mayor que cero: %w", ErrInvalidInput)
	ErrInvalidAmount   = fmt.Errorf("el monto debe ser mayor que cero: %w", ErrInvalidInput)
	ErrMissingProduct  = fmt.Errorf("falta el producto (productId o productData): %w", ErrInvalidInput)
	ErrInvalidType     = fmt.Errorf("tipo de transacción inválido: %w", ErrInvalidInput)
)
