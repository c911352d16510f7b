package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// FactureFilter filtros de listado; Type vacío lista todas.
type FactureFilter struct {
	Type           entity.FactureType
	CounterpartyID string
}

// FactureRepository persistencia de facturas.
type FactureRepository interface {
	Create(ctx context.Context, f *entity.Facture) error
	GetByID(ctx context.Context, id string) (*entity.Facture, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Facture, error)
	Update(ctx context.Context, f *entity.Facture) error
	List(ctx context.Context, filter FactureFilter) ([]*entity.Facture, error)
}
