package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/inventory"
	"github.com/jhoicas/gestion-api/internal/application/ports"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

// FournisseurUseCase CRUD de proveedores y su historial de entregas.
type FournisseurUseCase struct {
	repos    ports.Repos
	txRunner ports.TxRunner
	stock    *inventory.StockService
}

// NewFournisseurUseCase construye el caso de uso.
func NewFournisseurUseCase(repos ports.Repos, txRunner ports.TxRunner, stock *inventory.StockService) *FournisseurUseCase {
	return &FournisseurUseCase{repos: repos, txRunner: txRunner, stock: stock}
}

// Create crea un proveedor.
func (uc *FournisseurUseCase) Create(ctx context.Context, in dto.CreateFournisseurRequest) (*dto.FournisseurResponse, error) {
	now := time.Now()
	f := &entity.Fournisseur{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Contact:   in.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Fournisseurs.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFournisseurResponse(f), nil
}

// List lista los proveedores.
func (uc *FournisseurUseCase) List(ctx context.Context) ([]dto.FournisseurResponse, error) {
	list, err := uc.repos.Fournisseurs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FournisseurResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFournisseurResponse(f))
	}
	return out, nil
}

// Get obtiene un proveedor con sus entregas.
func (uc *FournisseurUseCase) Get(ctx context.Context, id string) (*dto.FournisseurResponse, error) {
	f, err := uc.repos.Fournisseurs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFournisseurNotFound
	}
	return toFournisseurResponse(f), nil
}

// Update modifica nombre o contacto.
func (uc *FournisseurUseCase) Update(ctx context.Context, id string, in dto.UpdateFournisseurRequest) (*dto.FournisseurResponse, error) {
	var out *entity.Fournisseur
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		f, err := lockFournisseur(ctx, r, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			f.Name = strings.TrimSpace(*in.Name)
		}
		if in.Contact != nil {
			f.Contact = *in.Contact
		}
		f.UpdatedAt = time.Now()
		out = f
		return r.Fournisseurs.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFournisseurResponse(out), nil
}

// Delete elimina el proveedor.
func (uc *FournisseurUseCase) Delete(ctx context.Context, id string) error {
	return notFoundAs(uc.repos.Fournisseurs.Delete(ctx, id), domain.ErrFournisseurNotFound)
}

// AddDelivery agrega una entrega recalculada y suma el stock en la misma transacción.
func (uc *FournisseurUseCase) AddDelivery(ctx context.Context, fournisseurID string, in dto.AddDeliveryRequest) (*dto.FournisseurResponse, error) {
	if in.Quantite <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var out *entity.Fournisseur
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		f, err := lockFournisseur(ctx, r, fournisseurID)
		if err != nil {
			return err
		}
		product, err := uc.stock.Increase(ctx, r.Products, in.ProductID, in.Quantite)
		if err != nil {
			return err
		}
		price := product.PurchasePrice
		if in.PrixAchat != nil {
			price = *in.PrixAchat
		}
		line := entity.DeliveryLine{
			ID:            uuid.New().String(),
			Product:       product.ID,
			Quantity:      in.Quantite,
			PurchasePrice: price,
			Paid:          in.MontantPaye,
			Date:          time.Now(),
		}
		ledger.RecomputeDelivery(&line)
		f.Deliveries = append(f.Deliveries, line)
		f.UpdatedAt = line.Date
		out = f
		return r.Fournisseurs.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFournisseurResponse(out), nil
}

// UpdatePayment suma un pago a una entrega y recalcula restante y estado.
func (uc *FournisseurUseCase) UpdatePayment(ctx context.Context, fournisseurID, lineID string, amount decimal.Decimal) (*entity.DeliveryLine, error) {
	var out entity.DeliveryLine
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		f, err := lockFournisseur(ctx, r, fournisseurID)
		if err != nil {
			return err
		}
		line := f.FindDelivery(lineID)
		if line == nil {
			return domain.ErrLineNotFound
		}
		paid, err := ledger.AddPayment(line.Paid, amount)
		if err != nil {
			return err
		}
		line.Paid = paid
		ledger.RecomputeDelivery(line)
		f.UpdatedAt = time.Now()
		out = *line
		return r.Fournisseurs.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func lockFournisseur(ctx context.Context, r ports.Repos, id string) (*entity.Fournisseur, error) {
	f, err := r.Fournisseurs.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFournisseurNotFound
	}
	return f, nil
}

func toFournisseurResponse(f *entity.Fournisseur) *dto.FournisseurResponse {
	deliveries := f.Deliveries
	if deliveries == nil {
		deliveries = []entity.DeliveryLine{}
	}
	return &dto.FournisseurResponse{
		ID:              f.ID,
		Name:            f.Name,
		Contact:         f.Contact,
		ProduitsFournis: deliveries,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}
