package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
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

// intentos para obtener un numeroBL libre
const blNumberAttempts = 5

// BonLivraisonUseCase notas de entrega a clientes.
type BonLivraisonUseCase struct {
	repos    ports.Repos
	txRunner ports.TxRunner
	stock    *inventory.StockService
	number   func(year int) string
}

// NewBonLivraisonUseCase construye el caso de uso.
func NewBonLivraisonUseCase(repos ports.Repos, txRunner ports.TxRunner, stock *inventory.StockService) *BonLivraisonUseCase {
	return &BonLivraisonUseCase{repos: repos, txRunner: txRunner, stock: stock, number: randomBLNumber}
}

func randomBLNumber(year int) string {
	return fmt.Sprintf("BL-%d-%d", year, 1000+rand.IntN(9000))
}

// Create descuenta el stock de todas las líneas y guarda la nota. Si una línea falla
// (producto inexistente, stock insuficiente) no se aplica ningún descuento.
func (uc *BonLivraisonUseCase) Create(ctx context.Context, in dto.CreateBonLivraisonRequest) (*dto.BonLivraisonResponse, error) {
	if len(in.Produits) == 0 {
		return nil, fmt.Errorf("la nota no tiene productos: %w", domain.ErrInvalidInput)
	}
	var out *entity.BonLivraison
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := r.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrClientNotFound
		}
		now := time.Now()
		b := &entity.BonLivraison{
			ID:              uuid.New().String(),
			ClientID:        c.ID,
			Lines:           make([]entity.BonLivraisonLine, 0, len(in.Produits)),
			DeliveryAddress: in.AdresseLivraison,
			ClientPhone:     c.Phone,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if b.DeliveryAddress == "" {
			b.DeliveryAddress = c.Address
		}
		total := decimal.Zero
		for _, l := range in.Produits {
			p, err := uc.stock.Decrease(ctx, r.Products, l.ProductID, l.Quantite)
			if err != nil {
				return fmt.Errorf("producto %s: %w", l.ProductID, err)
			}
			unit := p.DefaultSalePrice()
			if l.PrixUnitaire != nil {
				unit = *l.PrixUnitaire
			}
			d := ledger.Recompute(unit, l.Quantite, decimal.Zero)
			b.Lines = append(b.Lines, entity.BonLivraisonLine{
				Product:     p.ID,
				Designation: p.Name,
				Quantity:    l.Quantite,
				UnitPrice:   decimal.Max(decimal.Zero, unit),
				Total:       d.Total,
			})
			total = total.Add(d.Total)
		}
		b.Total = total
		b.Paid = decimal.Max(decimal.Zero, in.MontantPaye)
		b.Remaining = decimal.Max(decimal.Zero, total.Sub(b.Paid))
		b.Status = ledger.StatusFor(b.Remaining)

		for attempt := 0; ; attempt++ {
			b.Number = uc.number(now.Year())
			err := r.BonsLivraison.Create(ctx, b)
			if err == nil {
				break
			}
			if !errors.Is(err, domain.ErrDuplicate) || attempt+1 >= blNumberAttempts {
				return err
			}
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBonLivraisonResponse(out), nil
}

// List lista las notas de entrega.
func (uc *BonLivraisonUseCase) List(ctx context.Context) ([]dto.BonLivraisonResponse, error) {
	list, err := uc.repos.BonsLivraison.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BonLivraisonResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBonLivraisonResponse(b))
	}
	return out, nil
}

// Get obtiene una nota de entrega.
func (uc *BonLivraisonUseCase) Get(ctx context.Context, id string) (*dto.BonLivraisonResponse, error) {
	b, err := uc.repos.BonsLivraison.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("bon de livraison %s: %w", id, domain.ErrNotFound)
	}
	return toBonLivraisonResponse(b), nil
}

func toBonLivraisonResponse(b *entity.BonLivraison) *dto.BonLivraisonResponse {
	lines := b.Lines
	if lines == nil {
		lines = []entity.BonLivraisonLine{}
	}
	return &dto.BonLivraisonResponse{
		ID:               b.ID,
		NumeroBL:         b.Number,
		Client:           b.ClientID,
		Produits:         lines,
		MontantTotal:     b.Total,
		MontantPaye:      b.Paid,
		ResteAPayer:      b.Remaining,
		Status:           b.Status,
		AdresseLivraison: b.DeliveryAddress,
		TelephoneClient:  b.ClientPhone,
		CreatedAt:        b.CreatedAt,
	}
}
