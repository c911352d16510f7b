// Package inventory ajusta la cantidad en stock de los productos como efecto de compras,
// entregas y transferencias.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// StockService opera siempre con el ProductRepository de la transacción del llamador:
// la fila del producto se bloquea (GetForUpdate) antes de leer la cantidad, así dos
// operaciones concurrentes sobre el mismo producto quedan serializadas.
type StockService struct {
	now func() time.Time
}

// NewStockService construye el servicio.
func NewStockService() *StockService {
	return &StockService{now: time.Now}
}

// Decrease descuenta qty del producto. Falla con ErrInsufficientStock sin escribir nada
// si qty supera lo disponible.
func (s *StockService) Decrease(ctx context.Context, products repository.ProductRepository, productID string, qty int64) (*entity.Product, error) {
	p, err := s.lock(ctx, products, productID, qty)
	if err != nil {
		return nil, err
	}
	if qty > p.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	return s.save(ctx, products, p, p.Quantity-qty)
}

// Increase suma qty al producto, sin límite superior.
func (s *StockService) Increase(ctx context.Context, products repository.ProductRepository, productID string, qty int64) (*entity.Product, error) {
	p, err := s.lock(ctx, products, productID, qty)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, products, p, p.Quantity+qty)
}

// Transfer descuenta y vuelve a sumar qty sobre el mismo producto (neto cero). Solo
// verifica la disponibilidad bajo bloqueo; la transferencia mueve la contabilidad entre
// partenaires, no el conteo físico.
func (s *StockService) Transfer(ctx context.Context, products repository.ProductRepository, productID string, qty int64) (*entity.Product, error) {
	if _, err := s.Decrease(ctx, products, productID, qty); err != nil {
		return nil, err
	}
	return s.Increase(ctx, products, productID, qty)
}

func (s *StockService) lock(ctx context.Context, products repository.ProductRepository, productID string, qty int64) (*entity.Product, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if productID == "" {
		return nil, domain.ErrMissingProduct
	}
	p, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *StockService) save(ctx context.Context, products repository.ProductRepository, p *entity.Product, quantity int64) (*entity.Product, error) {
	if err := products.UpdateQuantity(ctx, p.ID, quantity); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	p.Quantity = quantity
	p.UpdatedAt = s.now()
	return p, nil
}
