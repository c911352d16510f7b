package usecase

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

// ClientUseCase CRUD de clientes y su historial de compras.
type ClientUseCase struct {
	repos    ports.Repos
	txRunner ports.TxRunner
	stock    *inventory.StockService
	invoices *billing.Builder
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repos ports.Repos, txRunner ports.TxRunner, stock *inventory.StockService, invoices *billing.Builder) *ClientUseCase {
	return &ClientUseCase{repos: repos, txRunner: txRunner, stock: stock, invoices: invoices}
}

// Create crea un cliente. El email es único (ErrConflict).
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repos.Clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("cliente con email %s: %w", email, domain.ErrConflict)
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista los clientes.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente con sus compras.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update modifica los datos de contacto; las compras no se tocan.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	var out *entity.Client
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := r.Clients.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrClientNotFound
		}
		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != c.Email {
				other, err := r.Clients.GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if other != nil {
					return fmt.Errorf("cliente con email %s: %w", email, domain.ErrConflict)
				}
				c.Email = email
			}
		}
		if in.Name != nil {
			c.Name = strings.TrimSpace(*in.Name)
		}
		if in.Address != nil {
			c.Address = *in.Address
		}
		if in.Phone != nil {
			c.Phone = *in.Phone
		}
		c.UpdatedAt = time.Now()
		out = c
		return r.Clients.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toClientResponse(out), nil
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return notFoundAs(uc.repos.Clients.Delete(ctx, id), domain.ErrClientNotFound)
}

// AddPurchase descuenta stock y agrega la línea derivada en la misma transacción.
// El costo es el prixAchat actual del producto. Sin prixVente en la petición el total es
// prixAchat×quantite y no hay marge.
func (uc *ClientUseCase) AddPurchase(ctx context.Context, clientID string, in dto.AddPurchaseRequest) (*dto.ClientResponse, error) {
	if in.Quantite <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var out *entity.Client
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := r.Clients.GetForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrClientNotFound
		}
		product, err := uc.stock.Decrease(ctx, r.Products, in.ProductID, in.Quantite)
		if err != nil {
			return err
		}
		line := entity.PurchaseLine{
			ID:            uuid.New().String(),
			Product:       product.ID,
			Quantity:      in.Quantite,
			PurchasePrice: product.PurchasePrice,
			Paid:          in.MontantPaye,
			Date:          time.Now(),
		}
		if in.PrixVente != nil {
			line.SalePrice = decimal.NewNullDecimal(*in.PrixVente)
		}
		ledger.DerivePurchase(&line)
		c.Purchases = append(c.Purchases, line)
		c.UpdatedAt = line.Date
		out = c
		return r.Clients.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toClientResponse(out), nil
}

// UpdatePayment suma un pago a una compra (por ID de línea o, en clientes antiguos, de producto).
func (uc *ClientUseCase) UpdatePayment(ctx context.Context, clientID, lineID string, amount decimal.Decimal) (*entity.PurchaseLine, error) {
	var out entity.PurchaseLine
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		c, err := r.Clients.GetForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrClientNotFound
		}
		line := c.FindPurchase(lineID)
		if line == nil {
			return domain.ErrLineNotFound
		}
		paid, err := ledger.AddPayment(line.Paid, amount)
		if err != nil {
			return err
		}
		line.Paid = paid
		ledger.DerivePurchase(line)
		c.UpdatedAt = time.Now()
		out = *line
		return r.Clients.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Invoice factura de las compras del cliente dentro del período.
func (uc *ClientUseCase) Invoice(ctx context.Context, clientID string, format billing.Format, period billing.Period) (*billing.Invoice, *billing.Document, error) {
	c, err := uc.load(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	inv, err := uc.invoices.BuildClientInvoice(ctx, c, period)
	if err != nil {
		return nil, nil, err
	}
	doc, err := uc.invoices.Render(ctx, inv, format)
	if err != nil {
		return nil, nil, err
	}
	return inv, doc, nil
}

func (uc *ClientUseCase) load(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrClientNotFound
	}
	return c, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	purchases := c.Purchases
	if purchases == nil {
		purchases = []entity.PurchaseLine{}
	}
	return &dto.ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Address:         c.Address,
		Phone:           c.Phone,
		ProduitsAchetes: purchases,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
