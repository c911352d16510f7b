package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// PartnerRepository persistencia de partenaires y su libro de transacciones.
type PartnerRepository interface {
	Create(ctx context.Context, p *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Partner, error)
	Update(ctx context.Context, p *entity.Partner) error
	// List devuelve los partenaires del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.Partner, error)
	Delete(ctx context.Context, id string) error
}
