package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// BonLivraisonRepository persistencia de notas de entrega.
type BonLivraisonRepository interface {
	Create(ctx context.Context, b *entity.BonLivraison) error
	GetByID(ctx context.Context, id string) (*entity.BonLivraison, error)
	List(ctx context.Context) ([]*entity.BonLivraison, error)
}
