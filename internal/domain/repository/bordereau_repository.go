package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// BordereauFilter búsqueda paginada. Query se compara sin distinguir mayúsculas contra
// el nombre del partenaire, el nombre de la empresa y el número de entrega.
type BordereauFilter struct {
	Query  string
	Limit  int
	Offset int
}

// BordereauRepository persistencia de bordereaux.
type BordereauRepository interface {
	Create(ctx context.Context, b *entity.Bordereau) error
	GetByID(ctx context.Context, id string) (*entity.Bordereau, error)
	Update(ctx context.Context, b *entity.Bordereau) error
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de coincidencias.
	List(ctx context.Context, filter BordereauFilter) ([]*entity.Bordereau, int, error)
}
