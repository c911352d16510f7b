package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/ports"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// FactureUseCase facturas de clientes y proveedores. Crear una factura no mueve stock.
type FactureUseCase struct {
	repos    ports.Repos
	txRunner ports.TxRunner
}

// NewFactureUseCase construye el caso de uso.
func NewFactureUseCase(repos ports.Repos, txRunner ports.TxRunner) *FactureUseCase {
	return &FactureUseCase{repos: repos, txRunner: txRunner}
}

// Create valida la contraparte y los productos y deriva totales por línea y globales.
func (uc *FactureUseCase) Create(ctx context.Context, in dto.CreateFactureRequest) (*dto.FactureResponse, error) {
	ft := entity.FactureType(in.Type)
	if !ft.Valid() {
		return nil, fmt.Errorf("tipo de factura %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if len(in.Produits) == 0 {
		return nil, fmt.Errorf("la factura no tiene productos: %w", domain.ErrInvalidInput)
	}

	f := &entity.Facture{ID: uuid.New().String(), Type: ft}
	switch ft {
	case entity.FactureClient:
		c, err := uc.repos.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrClientNotFound
		}
		f.ClientID = c.ID
	case entity.FactureFournisseur:
		s, err := uc.repos.Fournisseurs.GetByID(ctx, in.FournisseurID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrFournisseurNotFound
		}
		f.FournisseurID = s.ID
	}

	total := decimal.Zero
	f.Lines = make([]entity.FactureLine, 0, len(in.Produits))
	for _, l := range in.Produits {
		if l.Quantite <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		p, err := getProduct(ctx, uc.repos.Products, l.ProductID)
		if err != nil {
			return nil, err
		}
		unit := p.DefaultSalePrice()
		if ft == entity.FactureFournisseur {
			unit = p.DefaultPurchasePrice()
		}
		if l.PrixUnitaire != nil {
			unit = *l.PrixUnitaire
		}
		d := ledger.Recompute(unit, l.Quantite, decimal.Zero)
		f.Lines = append(f.Lines, entity.FactureLine{
			Product:       p.ID,
			Quantity:      l.Quantite,
			UnitPrice:     decimal.Max(decimal.Zero, unit),
			PurchasePrice: decimal.NewNullDecimal(p.PurchasePrice),
			Total:         d.Total,
		})
		total = total.Add(d.Total)
	}

	applyFactureTotals(f, total, in.MontantPaye)
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	if err := uc.repos.Factures.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFactureResponse(f), nil
}

// List lista facturas, opcionalmente por tipo y contraparte.
func (uc *FactureUseCase) List(ctx context.Context, factureType, counterpartyID string) ([]dto.FactureResponse, error) {
	filter := repository.FactureFilter{Type: entity.FactureType(factureType), CounterpartyID: counterpartyID}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("tipo de factura %q: %w", factureType, domain.ErrInvalidInput)
	}
	list, err := uc.repos.Factures.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FactureResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFactureResponse(f))
	}
	return out, nil
}

// Get obtiene una factura.
func (uc *FactureUseCase) Get(ctx context.Context, id string) (*dto.FactureResponse, error) {
	f, err := uc.repos.Factures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return toFactureResponse(f), nil
}

// AddPayment suma un pago a la factura.
func (uc *FactureUseCase) AddPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.FactureResponse, error) {
	var out *entity.Facture
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		f, err := r.Factures.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
		}
		paid, err := ledger.AddPayment(f.Paid, amount)
		if err != nil {
			return err
		}
		applyFactureTotals(f, f.Total, paid)
		f.UpdatedAt = time.Now()
		out = f
		return r.Factures.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return toFactureResponse(out), nil
}

func applyFactureTotals(f *entity.Facture, total, paid decimal.Decimal) {
	paid = decimal.Max(decimal.Zero, paid)
	f.Total = total
	f.Paid = paid
	f.Remaining = decimal.Max(decimal.Zero, total.Sub(paid))
	f.Status = ledger.StatusFor(f.Remaining)
}

func toFactureResponse(f *entity.Facture) *dto.FactureResponse {
	lines := f.Lines
	if lines == nil {
		lines = []entity.FactureLine{}
	}
	return &dto.FactureResponse{
		ID:           f.ID,
		Type:         f.Type,
		Client:       f.ClientID,
		Fournisseur:  f.FournisseurID,
		Produits:     lines,
		MontantTotal: f.Total,
		MontantPaye:  f.Paid,
		ResteAPayer:  f.Remaining,
		Status:       f.Status,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
