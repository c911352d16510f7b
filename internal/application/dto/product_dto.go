package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Nom       string           `json:"nom" validate:"required,min=1,max=200"`
	Marque    string           `json:"marque" validate:"max=200"`
	Categorie string           `json:"categorie" validate:"max=200"`
	Quantite  int64            `json:"quantite" validate:"min=0"`
	PrixAchat decimal.Decimal  `json:"prixAchat"`
	PrixVente *decimal.Decimal `json:"prixVente"`
}

// UpdateProductRequest entrada para actualizar un producto; campos nil no se tocan.
type UpdateProductRequest struct {
	Nom       *string          `json:"nom" validate:"omitempty,min=1,max=200"`
	Marque    *string          `json:"marque" validate:"omitempty,max=200"`
	Categorie *string          `json:"categorie" validate:"omitempty,max=200"`
	Quantite  *int64           `json:"quantite" validate:"omitempty,min=0"`
	PrixAchat *decimal.Decimal `json:"prixAchat"`
	PrixVente *decimal.Decimal `json:"prixVente"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string           `json:"id"`
	Nom       string           `json:"nom"`
	Marque    string           `json:"marque"`
	Categorie string           `json:"categorie"`
	Quantite  int64            `json:"quantite"`
	PrixAchat decimal.Decimal  `json:"prixAchat"`
	PrixVente *decimal.Decimal `json:"prixVente,omitempty"`
	CreatedBy string           `json:"createdBy"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
