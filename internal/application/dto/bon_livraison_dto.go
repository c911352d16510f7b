package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// BonLivraisonLineRequest línea de la nota; PrixUnitaire por defecto es el de venta del producto.
type BonLivraisonLineRequest struct {
	ProductID    string           `json:"productId" validate:"required"`
	Quantite     int64            `json:"quantite"`
	PrixUnitaire *decimal.Decimal `json:"prixUnitaire"`
}

// CreateBonLivraisonRequest entrada para crear una nota de entrega.
type CreateBonLivraisonRequest struct {
	ClientID         string                    `json:"clientId" validate:"required"`
	Produits         []BonLivraisonLineRequest `json:"produits" validate:"required,min=1,dive"`
	AdresseLivraison string                    `json:"adresseLivraison"`
	MontantPaye      decimal.Decimal           `json:"montantPaye"`
}

// BonLivraisonResponse salida de una nota de entrega.
type BonLivraisonResponse struct {
	ID               string                    `json:"id"`
	NumeroBL         string                    `json:"numeroBL"`
	Client           string                    `json:"client"`
	Produits         []entity.BonLivraisonLine `json:"produits"`
	MontantTotal     decimal.Decimal           `json:"montantTotal"`
	MontantPaye      decimal.Decimal           `json:"montantPaye"`
	ResteAPayer      decimal.Decimal           `json:"resteAPayer"`
	Status           entity.LineStatus         `json:"status"`
	AdresseLivraison string                    `json:"adresseLivraison"`
	TelephoneClient  string                    `json:"telephoneClient"`
	CreatedAt        time.Time                 `json:"createdAt"`
}
