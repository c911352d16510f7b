package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad normalmente cambia vía
// compras, entregas y transacciones; Update la acepta como corrección manual del admin.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto; createdBy es el admin autenticado.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Nom)
	if name == "" {
		return nil, fmt.Errorf("nom requerido: %w", domain.ErrInvalidInput)
	}
	if in.Quantite < 0 || in.PrixAchat.IsNegative() || (in.PrixVente != nil && in.PrixVente.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Brand:         in.Marque,
		Category:      in.Categorie,
		Quantity:      in.Quantite,
		PurchasePrice: in.PrixAchat,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.PrixVente != nil {
		product.SalePrice = decimal.NewNullDecimal(*in.PrixVente)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza solo los campos presentes.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Nom != nil {
		name := strings.TrimSpace(*in.Nom)
		if name == "" {
			return nil, fmt.Errorf("nom requerido: %w", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Marque != nil {
		product.Brand = *in.Marque
	}
	if in.Categorie != nil {
		product.Category = *in.Categorie
	}
	if in.Quantite != nil {
		if *in.Quantite < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product.Quantity = *in.Quantite
	}
	if in.PrixAchat != nil {
		if in.PrixAchat.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PrixAchat
	}
	if in.PrixVente != nil {
		if in.PrixVente.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = decimal.NewNullDecimal(*in.PrixVente)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos, del más reciente al más antiguo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID. Las líneas históricas conservan su referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return notFoundAs(uc.repo.Delete(ctx, id), domain.ErrProductNotFound)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:        p.ID,
		Nom:       p.Name,
		Marque:    p.Brand,
		Categorie: p.Category,
		Quantite:  p.Quantity,
		PrixAchat: p.PurchasePrice,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.SalePrice.Valid {
		v := p.SalePrice.Decimal
		out.PrixVente = &v
	}
	return out
}
