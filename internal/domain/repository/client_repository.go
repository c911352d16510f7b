package repository

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes con sus compras embebidas.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
