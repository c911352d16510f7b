package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonLivraison nota de entrega a un cliente. Crearla descuenta stock de cada línea.
type BonLivraison struct {
	ID              string
	Number          string // numeroBL, BL-<año>-<4 dígitos>
	ClientID        string
	Lines           []BonLivraisonLine
	Total           decimal.Decimal
	Paid            decimal.Decimal
	Remaining       decimal.Decimal
	Status          LineStatus
	DeliveryAddress string
	ClientPhone     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BonLivraisonLine línea de la nota con la designación copiada del producto.
type BonLivraisonLine struct {
	Product     string          `json:"product"`
	Designation string          `json:"designation"`
	Quantity    int64           `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prixUnitaire"`
	Total       decimal.Decimal `json:"total"`
}
