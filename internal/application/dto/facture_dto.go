package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// FactureLineRequest línea de factura. PrixUnitaire por defecto: venta para clientes,
// compra para proveedores.
type FactureLineRequest struct {
	ProductID    string           `json:"product" validate:"required"`
	Quantite     int64            `json:"quantite" validate:"min=1"`
	PrixUnitaire *decimal.Decimal `json:"prixUnitaire"`
}

// CreateFactureRequest entrada para crear una factura. No mueve stock.
type CreateFactureRequest struct {
	Type          string               `json:"type" validate:"required,oneof=client fournisseur"`
	ClientID      string               `json:"client"`
	FournisseurID string               `json:"fournisseur"`
	Produits      []FactureLineRequest `json:"produits" validate:"required,min=1,dive"`
	MontantPaye   decimal.Decimal      `json:"montantPaye"`
}

// FactureResponse salida de una factura.
type FactureResponse struct {
	ID           string               `json:"id"`
	Type         entity.FactureType   `json:"type"`
	Client       string               `json:"client,omitempty"`
	Fournisseur  string               `json:"fournisseur,omitempty"`
	Produits     []entity.FactureLine `json:"produits"`
	MontantTotal decimal.Decimal      `json:"montantTotal"`
	MontantPaye  decimal.Decimal      `json:"montantPaye"`
	ResteAPayer  decimal.Decimal      `json:"resteAPayer"`
	Status       entity.LineStatus    `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
