// Package partner implementa el libro bidireccional de los partenaires: transacciones
// buy/supply, pagos, reparto de pagos, transferencias, cálculo neto y facturas.
package partner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/inventory"
	"github.com/jhoicas/gestion-api/internal/application/ports"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

// UseCase casos de uso de partenaires. Toda operación que escribe corre en una sola
// transacción de txRunner; las lecturas usan repos directamente.
type UseCase struct {
	repos    ports.Repos
	txRunner ports.TxRunner
	stock    *inventory.StockService
	invoices *billing.Builder
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos ports.Repos, txRunner ports.TxRunner, stock *inventory.StockService, invoices *billing.Builder) *UseCase {
	return &UseCase{
		repos:    repos,
		txRunner: txRunner,
		stock:    stock,
		invoices: invoices,
		now:      time.Now,
	}
}

// Create crea un partenaire sin transacciones.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	p := &entity.Partner{
		ID:         uuid.New().String(),
		Name:       name,
		Identifier: strings.TrimSpace(in.Identifier),
		Contact:    in.Contact,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repos.Partners.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// List lista partenaires del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context) ([]dto.PartnerResponse, error) {
	list, err := uc.repos.Partners.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPartnerResponse(p))
	}
	return out, nil
}

// Get obtiene un partenaire con su libro.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// Update modifica nombre, identificador o contacto.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	var out *entity.Partner
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := lockPartner(ctx, r, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
			}
			p.Name = name
		}
		if in.Identifier != nil {
			p.Identifier = strings.TrimSpace(*in.Identifier)
		}
		if in.Contact != nil {
			p.Contact = *in.Contact
		}
		p.UpdatedAt = uc.now()
		out = p
		return r.Partners.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(out), nil
}

// Delete elimina el partenaire. Los productos referenciados no se tocan.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repos.Partners.Delete(ctx, id); err != nil {
		if errorsIsNotFound(err) {
			return domain.ErrPartnerNotFound
		}
		return err
	}
	return nil
}

// AddTransaction registra un buy (descuenta stock) o un supply (suma stock, creando el
// producto si llega productData). Si algo falla no queda ni el ajuste de stock ni la línea.
func (uc *UseCase) AddTransaction(ctx context.Context, actorID, partnerID string, in dto.AddTransactionRequest) (*dto.PartnerResponse, error) {
	txType := entity.TransactionType(in.Type)
	if txType != entity.TransactionBuy && txType != entity.TransactionSupply {
		return nil, fmt.Errorf("%w (buy|supply)", domain.ErrInvalidType)
	}

	var out *entity.Partner
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := lockPartner(ctx, r, partnerID)
		if err != nil {
			return err
		}
		if in.Quantite <= 0 {
			return domain.ErrInvalidQuantity
		}

		var product *entity.Product
		switch txType {
		case entity.TransactionSupply:
			productID := in.ProductID
			if productID == "" {
				if in.ProductData == nil {
					return domain.ErrMissingProduct
				}
				created, err := uc.createProduct(ctx, r, actorID, in.ProductData)
				if err != nil {
					return err
				}
				productID = created.ID
			}
			product, err = uc.stock.Increase(ctx, r.Products, productID, in.Quantite)
		case entity.TransactionBuy:
			if in.ProductID == "" {
				return fmt.Errorf("productId requerido para buy: %w", domain.ErrMissingProduct)
			}
			product, err = uc.stock.Decrease(ctx, r.Products, in.ProductID, in.Quantite)
		}
		if err != nil {
			return err
		}

		unit := product.DefaultSalePrice()
		if in.PrixUnitaire != nil && in.PrixUnitaire.IsPositive() {
			unit = *in.PrixUnitaire
		}
		t := entity.Transaction{
			ID:        uuid.New().String(),
			Product:   product.ID,
			Quantity:  in.Quantite,
			UnitPrice: unit,
			Type:      txType,
			Paid:      in.MontantPaye,
			Date:      uc.now(),
		}
		ledger.RecomputeTransaction(&t)
		p.Transactions = append(p.Transactions, t)
		p.UpdatedAt = t.Date
		out = p
		return r.Partners.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(out), nil
}

func (uc *UseCase) createProduct(ctx context.Context, r ports.Repos, actorID string, in *dto.ProductDataRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Nom)
	if name == "" {
		return nil, fmt.Errorf("nom requerido en productData: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Brand:         in.Marque,
		Category:      in.Categorie,
		PurchasePrice: decimal.Max(decimal.Zero, in.PrixAchat),
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.PrixVente != nil {
		p.SalePrice = decimal.NewNullDecimal(decimal.Max(decimal.Zero, *in.PrixVente))
	}
	if err := r.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePayment suma un pago adicional a una transacción y recalcula restante y estado.
func (uc *UseCase) UpdatePayment(ctx context.Context, partnerID, txID string, amount decimal.Decimal) (*entity.Transaction, error) {
	var out entity.Transaction
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := lockPartner(ctx, r, partnerID)
		if err != nil {
			return err
		}
		t := p.FindTransaction(txID)
		if t == nil {
			return domain.ErrTransactionNotFound
		}
		paid, err := ledger.AddPayment(t.Paid, amount)
		if err != nil {
			return err
		}
		t.Paid = paid
		ledger.RecomputeTransaction(t)
		p.UpdatedAt = uc.now()
		out = *t
		return r.Partners.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary balance neto del partenaire.
func (uc *UseCase) Summary(ctx context.Context, id string) (*dto.PartnerSummaryResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s := ledger.Net(p.Transactions)
	return &dto.PartnerSummaryResponse{
		PartnerID:    p.ID,
		Name:         p.Name,
		Supply:       toAmounts(s.Supply),
		Buy:          toAmounts(s.Buy),
		Net:          s.Net,
		NetRemaining: s.NetRemaining,
	}, nil
}

// DistributePayment reparte un pago global sobre las transacciones pendientes, de la más
// antigua a la más reciente. El reparto completo se confirma o no se aplica nada.
func (uc *UseCase) DistributePayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.DistributePaymentResponse, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var (
		out         *entity.Partner
		applied     []dto.AppliedPayment
		unallocated decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := lockPartner(ctx, r, id)
		if err != nil {
			return err
		}
		allocs, left := ledger.Distribute(p.Transactions, amount)
		applied = make([]dto.AppliedPayment, 0, len(allocs))
		for _, a := range allocs {
			t := &p.Transactions[a.Index]
			t.Paid = t.Paid.Add(a.Amount)
			ledger.RecomputeTransaction(t)
			applied = append(applied, dto.AppliedPayment{TransactionID: t.ID, Amount: a.Amount})
		}
		unallocated = left
		out = p
		if len(allocs) == 0 {
			return nil
		}
		p.UpdatedAt = uc.now()
		return r.Partners.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DistributePaymentResponse{
		Partner:     *toPartnerResponse(out),
		Applied:     applied,
		Unallocated: unallocated,
	}, nil
}

// Transfer registra un buy en el partenaire de origen y un supply en el de destino por
// el mismo producto y cantidad. El stock queda igual; ambos libros se guardan en la misma tx.
func (uc *UseCase) Transfer(ctx context.Context, fromID, toID string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if fromID == toID {
		return nil, fmt.Errorf("origen y destino deben ser distintos: %w", domain.ErrInvalidInput)
	}
	var from, to *entity.Partner
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		// Orden fijo de bloqueo para que dos transferencias cruzadas no se esperen mutuamente.
		if fromID < toID {
			if from, err = lockPartner(ctx, r, fromID); err == nil {
				to, err = lockPartner(ctx, r, toID)
			}
		} else {
			if to, err = lockPartner(ctx, r, toID); err == nil {
				from, err = lockPartner(ctx, r, fromID)
			}
		}
		if err != nil {
			return err
		}
		if in.ProductID == "" {
			return domain.ErrMissingProduct
		}
		if in.Quantite <= 0 {
			return domain.ErrInvalidQuantity
		}
		product, err := uc.stock.Transfer(ctx, r.Products, in.ProductID, in.Quantite)
		if err != nil {
			return err
		}

		prixFrom := product.DefaultSalePrice()
		if in.PrixFrom != nil && in.PrixFrom.IsPositive() {
			prixFrom = *in.PrixFrom
		}
		prixTo := product.DefaultPurchasePrice()
		if in.PrixTo != nil && in.PrixTo.IsPositive() {
			prixTo = *in.PrixTo
		}
		now := uc.now()
		buy := entity.Transaction{
			ID: uuid.New().String(), Product: product.ID, Quantity: in.Quantite,
			UnitPrice: prixFrom, Type: entity.TransactionBuy, Date: now,
		}
		supply := entity.Transaction{
			ID: uuid.New().String(), Product: product.ID, Quantity: in.Quantite,
			UnitPrice: prixTo, Type: entity.TransactionSupply, Date: now,
		}
		ledger.RecomputeTransaction(&buy)
		ledger.RecomputeTransaction(&supply)
		from.Transactions = append(from.Transactions, buy)
		to.Transactions = append(to.Transactions, supply)
		from.UpdatedAt, to.UpdatedAt = now, now

		if err := r.Partners.Update(ctx, from); err != nil {
			return err
		}
		return r.Partners.Update(ctx, to)
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferResponse{
		Message: "Transfer enregistré",
		From:    *toPartnerResponse(from),
		To:      *toPartnerResponse(to),
	}, nil
}

// Settle calcula el neto entre dos listas ad hoc de ítems. Es solo informativo: no
// escribe en ningún libro.
func (uc *UseCase) Settle(ctx context.Context, aID, bID string, in dto.SettleRequest) (*dto.SettleResponse, error) {
	if _, err := uc.load(ctx, aID); err != nil {
		return nil, err
	}
	if _, err := uc.load(ctx, bID); err != nil {
		return nil, err
	}
	s := ledger.Settle(toSettleItems(in.PartnerAItems), toSettleItems(in.PartnerBItems))
	return &dto.SettleResponse{
		TotalA:  s.TotalA,
		TotalB:  s.TotalB,
		Net:     s.Net,
		Message: SettleMessage(s.Net),
	}, nil
}

// SettleMessage texto de quién le debe a quién según el signo del neto.
func SettleMessage(net decimal.Decimal) string {
	if net.IsPositive() {
		return "Partner A owes B " + net.String()
	}
	return "Partner B owes A " + net.Abs().String()
}

// Invoice arma la factura de un tipo de transacción y la renderiza. doc nil significa JSON.
func (uc *UseCase) Invoice(ctx context.Context, id string, txType entity.TransactionType, format billing.Format, period billing.Period) (*billing.Invoice, *billing.Document, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	inv, err := uc.invoices.BuildPartnerInvoice(ctx, p, txType, period)
	if err != nil {
		return nil, nil, err
	}
	doc, err := uc.invoices.Render(ctx, inv, format)
	if err != nil {
		return nil, nil, err
	}
	return inv, doc, nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Partner, error) {
	p, err := uc.repos.Partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPartnerNotFound
	}
	return p, nil
}

func lockPartner(ctx context.Context, r ports.Repos, id string) (*entity.Partner, error) {
	p, err := r.Partners.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPartnerNotFound
	}
	return p, nil
}
