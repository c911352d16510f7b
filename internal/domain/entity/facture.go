package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FactureType contraparte de la factura.
type FactureType string

const (
	FactureClient      FactureType = "client"
	FactureFournisseur FactureType = "fournisseur"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t FactureType) Valid() bool {
	return t == FactureClient || t == FactureFournisseur
}

// Facture factura finalizada de un cliente o de un proveedor.
type Facture struct {
	ID            string
	Type          FactureType
	ClientID      string
	FournisseurID string
	Lines         []FactureLine // produits
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Remaining     decimal.Decimal
	Status        LineStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FactureLine línea de producto. PurchasePrice es el costo del producto al facturar (para márgenes).
type FactureLine struct {
	Product       string              `json:"product"`
	Quantity      int64               `json:"quantite"`
	UnitPrice     decimal.Decimal     `json:"prixUnitaire"`
	PurchasePrice decimal.NullDecimal `json:"prixAchat"`
	Total         decimal.Decimal     `json:"total"`
}

// CounterpartyID devuelve el cliente o el proveedor según el tipo.
func (f *Facture) CounterpartyID() string {
	if f.Type == FactureFournisseur {
		return f.FournisseurID
	}
	return f.ClientID
}
