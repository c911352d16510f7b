package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

// Source origen de una línea canónica.
type Source string

const (
	SourceFacture     Source = "facture"
	SourceClient      Source = "client"
	SourceFournisseur Source = "fournisseur"
)

// LineItem forma canónica de cualquier línea histórica. Después de un adaptador Flow
// nunca es FlowUnknown.
type LineItem struct {
	DocumentID  string
	Source      Source
	Type        string // tipo mostrado en el journal
	Partner     string
	ProductID   string
	ProductName string
	Date        time.Time
	Flow        ledger.FlowKind
	Quantity    decimal.Decimal
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Remaining   decimal.Decimal
	// CostOnSale las compras de clientes suman su costo a los achats además de la venta.
	CostOnSale bool
}

// Contribution aporte de la línea a ventas y achats del período.
func (l LineItem) Contribution() (sale, cost decimal.Decimal) {
	switch l.Flow {
	case ledger.FlowSale:
		sale = l.SalePrice.Mul(l.Quantity)
		if l.CostOnSale {
			cost = l.CostPrice.Mul(l.Quantity)
		}
	case ledger.FlowPurchase:
		cost = l.CostPrice.Mul(l.Quantity)
	}
	return sale, cost
}

// Catalog productos por ID, para completar referencias que solo traen el ID.
type Catalog map[string]*entity.Product

func (c Catalog) resolve(ref *productRef) {
	if ref.ID == "" {
		return
	}
	p, ok := c[ref.ID]
	if !ok {
		return
	}
	if ref.Name == "" {
		ref.Name = p.Name
	}
	if !ref.PurchasePrice.Valid {
		ref.PurchasePrice = num{decimal.NewNullDecimal(p.PurchasePrice)}
	}
	if !ref.SalePrice.Valid && p.SalePrice.Valid {
		ref.SalePrice = num{p.SalePrice}
	}
}

type rawLine struct {
	Product        productRef `json:"product"`
	ProductID      string     `json:"productId"`
	Nom            string     `json:"nom"`
	Designation    string     `json:"designation"`
	Quantite       num        `json:"quantite"`
	Qty            num        `json:"qty"`
	PrixUnitaire   num        `json:"prixUnitaire"`
	Price          num        `json:"price"`
	PrixVente      num        `json:"prixVente"`
	PriceVente     num        `json:"priceVente"`
	PrixAchat      num        `json:"prixAchat"`
	PurchasePrice  num        `json:"purchasePrice"`
	Total          num        `json:"total"`
	MontantTotal   num        `json:"montantTotal"`
	MontantPaye    num        `json:"montantPaye"`
	DateAchat      stamp      `json:"dateAchat"`
	CreatedAt      stamp      `json:"createdAt"`
	Date           stamp      `json:"date"`
	DateFourniture stamp      `json:"dateFourniture"`
	ID             string     `json:"id"`
	MongoID        string     `json:"_id"`
}

func (l *rawLine) quantity() decimal.Decimal { return first(l.Quantite, l.Qty) }

func (l *rawLine) productID() string {
	if l.Product.ID != "" {
		return l.Product.ID
	}
	return l.ProductID
}

func (l *rawLine) productName() string {
	switch {
	case l.Product.Name != "":
		return l.Product.Name
	case l.Nom != "":
		return l.Nom
	}
	return l.Designation
}

func (l *rawLine) lineID(fallback string) string {
	switch {
	case l.ID != "":
		return l.ID
	case l.MongoID != "":
		return l.MongoID
	}
	return fallback
}

// decodeLines acepta un arreglo de líneas o un objeto con produits (o, en documentos
// antiguos, items).
func decodeLines(raw json.RawMessage) ([]rawLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '{' {
		var wrapper struct {
			Produits []rawLine `json:"produits"`
			Items    []rawLine `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		if len(wrapper.Produits) > 0 {
			return wrapper.Produits, nil
		}
		return wrapper.Items, nil
	}
	var lines []rawLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// FactureLines normaliza las líneas de una factura. El pagado y el restante de la factura
// se reparten entre las líneas según su parte del total; la última recibe el residuo.
func FactureLines(doc entity.RawDocument, catalog Catalog) ([]LineItem, error) {
	lines, err := decodeLines(doc.Lines)
	if err != nil {
		return nil, fmt.Errorf("facture %s: %w", doc.ID, err)
	}
	flow := ledger.ClassifyLegacyType(doc.Kind)
	out := make([]LineItem, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		qty := l.quantity()
		if qty.IsZero() {
			continue
		}
		catalog.resolve(&l.Product)
		sale := first(l.PrixUnitaire, l.Price, l.PrixVente, l.PriceVente)
		cost := first(l.PrixAchat, l.PurchasePrice)
		if cost.IsZero() {
			cost = first(l.Product.PurchasePrice)
		}
		item := LineItem{
			DocumentID:  doc.ID,
			Source:      SourceFacture,
			Type:        doc.Kind,
			Partner:     doc.Partner,
			ProductID:   l.productID(),
			ProductName: l.productName(),
			Date:        doc.CreatedAt,
			Quantity:    qty,
			SalePrice:   sale,
			CostPrice:   cost,
		}
		switch flow {
		case ledger.FlowUnknown:
			if sale.IsPositive() {
				item.Flow = ledger.FlowSale
			} else {
				item.Flow = ledger.FlowPurchase
			}
		case ledger.FlowPurchase:
			item.Flow = flow
			// Una factura de proveedor factura al costo.
			if !present(l.PrixAchat, l.PurchasePrice) && !l.Product.PurchasePrice.Valid {
				item.CostPrice = sale
			}
		default:
			item.Flow = flow
		}
		if present(l.Total, l.MontantTotal) {
			item.Total = first(l.Total, l.MontantTotal)
		} else {
			item.Total = unitFor(item).Mul(qty)
		}
		out = append(out, item)
	}
	apportion(out, doc.Paid, doc.Remaining)
	return out, nil
}

// unitFor precio mostrado: venta para ventas, costo para compras sin precio de venta.
func unitFor(l LineItem) decimal.Decimal {
	if l.Flow == ledger.FlowPurchase && l.SalePrice.IsZero() {
		return l.CostPrice
	}
	return l.SalePrice
}

func apportion(items []LineItem, paid, remaining decimal.Decimal) {
	if len(items) == 0 {
		return
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	paidLeft, remLeft := paid, remaining
	for i := range items {
		if i == len(items)-1 {
			items[i].Paid, items[i].Remaining = paidLeft, remLeft
			return
		}
		if total.IsZero() {
			continue
		}
		p := paid.Mul(items[i].Total).DivRound(total, 2)
		r := remaining.Mul(items[i].Total).DivRound(total, 2)
		items[i].Paid, items[i].Remaining = p, r
		paidLeft, remLeft = paidLeft.Sub(p), remLeft.Sub(r)
	}
}

// ClientLines normaliza las compras embebidas de un cliente: cada línea es una venta que
// además suma su costo a los achats.
func ClientLines(doc entity.RawDocument, catalog Catalog) ([]LineItem, error) {
	lines, err := decodeLines(doc.Lines)
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", doc.ID, err)
	}
	out := make([]LineItem, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		date := l.DateAchat.Time
		qty := l.quantity()
		if date.IsZero() || qty.IsZero() {
			continue
		}
		catalog.resolve(&l.Product)
		sale := first(l.PrixVente, l.PrixUnitaire, l.Product.SalePrice)
		item := LineItem{
			DocumentID:  l.lineID(doc.ID),
			Source:      SourceClient,
			Type:        string(SourceClient),
			Partner:     doc.Partner,
			ProductID:   l.productID(),
			ProductName: l.productName(),
			Date:        date,
			Flow:        ledger.FlowSale,
			Quantity:    qty,
			SalePrice:   sale,
			CostPrice:   first(l.PrixAchat, l.Product.PurchasePrice),
			CostOnSale:  true,
		}
		item.Total = embeddedTotal(l, sale.Mul(qty))
		item.Paid = first(l.MontantPaye)
		item.Remaining = first(l.MontantTotal).Sub(item.Paid)
		out = append(out, item)
	}
	return out, nil
}

// FournisseurLines normaliza las entregas embebidas de un proveedor; solo cuentan como achats.
func FournisseurLines(doc entity.RawDocument, catalog Catalog) ([]LineItem, error) {
	lines, err := decodeLines(doc.Lines)
	if err != nil {
		return nil, fmt.Errorf("fournisseur %s: %w", doc.ID, err)
	}
	out := make([]LineItem, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		date := firstTime(l.CreatedAt, l.Date, l.DateFourniture)
		qty := l.quantity()
		if date.IsZero() || qty.IsZero() {
			continue
		}
		catalog.resolve(&l.Product)
		cost := first(l.PrixUnitaire, l.PrixAchat, l.Product.PurchasePrice)
		item := LineItem{
			DocumentID:  l.lineID(doc.ID),
			Source:      SourceFournisseur,
			Type:        string(SourceFournisseur),
			Partner:     doc.Partner,
			ProductID:   l.productID(),
			ProductName: l.productName(),
			Date:        date,
			Flow:        ledger.FlowPurchase,
			Quantity:    qty,
			SalePrice:   first(l.PrixUnitaire),
			CostPrice:   cost,
		}
		item.Total = embeddedTotal(l, cost.Mul(qty))
		item.Paid = first(l.MontantPaye)
		item.Remaining = first(l.MontantTotal).Sub(item.Paid)
		out = append(out, item)
	}
	return out, nil
}

func embeddedTotal(l *rawLine, computed decimal.Decimal) decimal.Decimal {
	if l.MontantTotal.Valid {
		return l.MontantTotal.Decimal
	}
	return computed
}
