package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario. Quantity nunca debe quedar negativa
// después de una operación confirmada.
type Product struct {
	ID            string
	Name          string // nom
	Brand         string // marque
	Category      string // categorie
	Quantity      int64
	PurchasePrice decimal.Decimal     // prixAchat
	SalePrice     decimal.NullDecimal // prixVente (opcional)
	CreatedBy     string              // admin que lo creó
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultSalePrice precio de venta si existe, si no el de compra.
func (p *Product) DefaultSalePrice() decimal.Decimal {
	if p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive() {
		return p.SalePrice.Decimal
	}
	return p.PurchasePrice
}

// DefaultPurchasePrice precio de compra si es positivo, si no el de venta.
func (p *Product) DefaultPurchasePrice() decimal.Decimal {
	if p.PurchasePrice.IsPositive() {
		return p.PurchasePrice
	}
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return decimal.Zero
}

// StockValue valor del inventario a precio de compra.
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(p.Quantity))
}
