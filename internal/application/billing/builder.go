// Package billing materializa facturas de partenaires y clientes y las renderiza
// en JSON, PDF o XML.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// TypeClient tipo de factura para compras de clientes.
const TypeClient = "client"

// Builder arma facturas y las delega al renderer del formato pedido.
type Builder struct {
	products  repository.ProductRepository
	renderers map[Format]InvoiceRenderer
	now       func() time.Time
}

// NewBuilder construye el builder. products se usa para resolver nombre, marca y categoría.
func NewBuilder(products repository.ProductRepository) *Builder {
	return &Builder{
		products:  products,
		renderers: map[Format]InvoiceRenderer{},
		now:       time.Now,
	}
}

// WithRenderer registra el renderer de un formato.
func (b *Builder) WithRenderer(f Format, r InvoiceRenderer) *Builder {
	if r != nil {
		b.renderers[f] = r
	}
	return b
}

// InvoiceNumber INV-<últimos 6 del id>-<TIPO>.
func InvoiceNumber(id, invoiceType string) string {
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("INV-%s-%s", suffix, strings.ToUpper(invoiceType))
}

// BuildPartnerInvoice filtra las transacciones del tipo pedido dentro del período.
func (b *Builder) BuildPartnerInvoice(ctx context.Context, p *entity.Partner, txType entity.TransactionType, period Period) (*Invoice, error) {
	if !txType.Valid() {
		return nil, fmt.Errorf("tipo de factura %q: %w", txType, domain.ErrInvalidType)
	}
	resolve := b.resolver(ctx)
	items := make([]InvoiceItem, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		if t.Type != txType || !period.Contains(t.Date) {
			continue
		}
		item := InvoiceItem{
			ID:        t.ID,
			ProductID: t.Product,
			Quantity:  t.Quantity,
			UnitPrice: t.UnitPrice,
			Total:     t.Total,
			Paid:      t.Paid,
			Remaining: t.Remaining,
			Date:      t.Date,
		}
		if err := resolve(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return b.assemble(p.ID, string(txType), Counterparty{
		ID:         p.ID,
		Name:       p.Name,
		Identifier: p.Identifier,
		Contact:    p.Contact,
	}, items), nil
}

// BuildClientInvoice factura de las compras de un cliente dentro del período.
func (b *Builder) BuildClientInvoice(ctx context.Context, c *entity.Client, period Period) (*Invoice, error) {
	resolve := b.resolver(ctx)
	items := make([]InvoiceItem, 0, len(c.Purchases))
	for _, l := range c.Purchases {
		if !period.Contains(l.Date) {
			continue
		}
		unit := l.PurchasePrice
		if l.SalePrice.Valid {
			unit = l.SalePrice.Decimal
		}
		item := InvoiceItem{
			ID:        l.ID,
			ProductID: l.Product,
			Quantity:  l.Quantity,
			UnitPrice: unit,
			Total:     l.Total,
			Paid:      l.Paid,
			Remaining: l.Remaining,
			Date:      l.Date,
		}
		if err := resolve(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return b.assemble(c.ID, TypeClient, Counterparty{
		ID:      c.ID,
		Name:    c.Name,
		Contact: c.Email,
		Address: c.Address,
		Phone:   c.Phone,
	}, items), nil
}

// Render genera el documento del formato pedido. Devuelve (nil, nil) cuando la
// respuesta debe ir en JSON: formato json o renderer no configurado.
func (b *Builder) Render(ctx context.Context, inv *Invoice, f Format) (*Document, error) {
	if f == FormatJSON {
		return nil, nil
	}
	r, ok := b.renderers[f]
	if !ok {
		return nil, nil
	}
	doc, err := r.Render(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	return doc, nil
}

func (b *Builder) assemble(ownerID, invoiceType string, party Counterparty, items []InvoiceItem) *Invoice {
	amounts := make([]ledger.Amounts, 0, len(items))
	for _, it := range items {
		amounts = append(amounts, ledger.Amounts{Total: it.Total, Paid: it.Paid, Remaining: it.Remaining})
	}
	return &Invoice{
		Number:       InvoiceNumber(ownerID, invoiceType),
		Type:         invoiceType,
		Date:         b.now(),
		Counterparty: party,
		Items:        items,
		Totals:       ledger.Fold(amounts),
	}
}

// resolver completa nombre, marca y categoría; un producto borrado deja la línea sin nombre.
func (b *Builder) resolver(ctx context.Context) func(*InvoiceItem) error {
	cache := map[string]*entity.Product{}
	return func(it *InvoiceItem) error {
		if it.ProductID == "" || b.products == nil {
			return nil
		}
		p, seen := cache[it.ProductID]
		if !seen {
			var err error
			p, err = b.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("invoice: get product: %w", err)
			}
			cache[it.ProductID] = p
		}
		if p != nil {
			it.ProductName, it.Brand, it.Category = p.Name, p.Brand, p.Category
		}
		return nil
	}
}

// ToResponse convierte la factura a su forma JSON.
func ToResponse(inv *Invoice) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		var product *dto.InvoiceProductDTO
		if it.ProductID != "" {
			product = &dto.InvoiceProductDTO{
				ID:        it.ProductID,
				Nom:       it.ProductName,
				Marque:    it.Brand,
				Categorie: it.Category,
			}
		}
		items = append(items, dto.InvoiceItemDTO{
			ID:           it.ID,
			Product:      product,
			Quantite:     it.Quantity,
			PrixUnitaire: it.UnitPrice,
			MontantTotal: it.Total,
			MontantPaye:  it.Paid,
			ResteAPayer:  it.Remaining,
			Date:         it.Date,
		})
	}
	c := inv.Counterparty
	return dto.InvoiceResponse{Invoice: dto.InvoiceDTO{
		InvoiceNumber: inv.Number,
		Type:          inv.Type,
		Date:          inv.Date,
		Partner: dto.InvoicePartyDTO{
			ID: c.ID, Name: c.Name, Identifier: c.Identifier,
			Contact: c.Contact, Address: c.Address, Phone: c.Phone,
		},
		Items: items,
		Totals: dto.InvoiceTotalsDTO{
			Total: inv.Totals.Total,
			Paid:  inv.Totals.Paid,
			Reste: inv.Totals.Remaining,
		},
	}}
}
