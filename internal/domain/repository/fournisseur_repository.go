package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// FournisseurRepository persistencia de proveedores con sus entregas embebidas.
type FournisseurRepository interface {
	Create(ctx context.Context, f *entity.Fournisseur) error
	GetByID(ctx context.Context, id string) (*entity.Fournisseur, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Fournisseur, error)
	Update(ctx context.Context, f *entity.Fournisseur) error
	List(ctx context.Context) ([]*entity.Fournisseur, error)
	Delete(ctx context.Context, id string) error
}
