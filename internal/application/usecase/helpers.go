package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// notFoundAs traduce un ErrNotFound genérico del repositorio a la variante de la entidad.
func notFoundAs(err, target error) error {
	if err != nil && errors.Is(err, domain.ErrNotFound) && !errors.Is(err, target) {
		return target
	}
	return err
}

func getProduct(ctx context.Context, products repository.ProductRepository, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrMissingProduct
	}
	p, err := products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
