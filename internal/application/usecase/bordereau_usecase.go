package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// BordereauUseCase documentos comerciales libres; no tocan stock ni libros.
type BordereauUseCase struct {
	repo repository.BordereauRepository
}

// NewBordereauUseCase construye el caso de uso.
func NewBordereauUseCase(repo repository.BordereauRepository) *BordereauUseCase {
	return &BordereauUseCase{repo: repo}
}

// Create guarda el documento con sus totales recalculados.
func (uc *BordereauUseCase) Create(ctx context.Context, actorID string, in dto.BordereauRequest) (*dto.BordereauResponse, error) {
	now := time.Now()
	b := &entity.Bordereau{
		ID:        uuid.New().String(),
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if err := applyBordereau(b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = now
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBordereauResponse(b), nil
}

// List página de bordereaux, del más reciente al más antiguo.
func (uc *BordereauUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.BordereauPageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.BordereauFilter{
		Query:  strings.TrimSpace(page.Query),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.BordereauResponse, 0, len(list))
	for _, b := range list {
		data = append(data, *toBordereauResponse(b))
	}
	return &dto.BordereauPageResponse{Data: data, TotalCount: total, Page: page.Page, Limit: page.Limit}, nil
}

// Get obtiene un bordereau.
func (uc *BordereauUseCase) Get(ctx context.Context, id string) (*dto.BordereauResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBordereauResponse(b), nil
}

// Update reemplaza el contenido y recalcula totales.
func (uc *BordereauUseCase) Update(ctx context.Context, id string, in dto.BordereauRequest) (*dto.BordereauResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBordereau(b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBordereauResponse(b), nil
}

// Delete elimina un bordereau.
func (uc *BordereauUseCase) Delete(ctx context.Context, id string) error {
	err := uc.repo.Delete(ctx, id)
	if err != nil && isNotFound(err) {
		return fmt.Errorf("bordereau %s: %w", id, domain.ErrNotFound)
	}
	return err
}

func (uc *BordereauUseCase) load(ctx context.Context, id string) (*entity.Bordereau, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("bordereau %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

func applyBordereau(b *entity.Bordereau, in dto.BordereauRequest) error {
	t := entity.BordereauType(in.Type)
	if t == "" {
		t = entity.BordereauGeneric
	}
	if !t.Valid() {
		return fmt.Errorf("tipo de bordereau %q: %w", in.Type, domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity < 0 || it.UnitPrice.IsNegative() || it.Amount.IsNegative() {
			return fmt.Errorf("ítem %q: %w", it.Designation, domain.ErrInvalidInput)
		}
	}
	b.Type = t
	b.Company = in.Company
	b.Partner = in.Partner
	b.Delivery = in.Livraison
	b.Items = append([]entity.BordereauItem(nil), in.Items...)
	b.Totals = entity.BordereauTotals{Paid: in.Totals.Paye}
	b.Notes = in.Notes
	b.RecalcTotals()
	return nil
}

func toBordereauResponse(b *entity.Bordereau) *dto.BordereauResponse {
	items := b.Items
	if items == nil {
		items = []entity.BordereauItem{}
	}
	return &dto.BordereauResponse{
		ID:        b.ID,
		Type:      b.Type,
		Company:   b.Company,
		Partner:   b.Partner,
		Livraison: b.Delivery,
		Items:     items,
		Totals:    b.Totals,
		Notes:     b.Notes,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
