package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateClientRequest actualización parcial de un cliente.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// AddPurchaseRequest compra de un cliente; descuenta stock.
type AddPurchaseRequest struct {
	ProductID   string           `json:"productId"`
	Quantite    int64            `json:"quantite"`
	PrixVente   *decimal.Decimal `json:"prixVente"`
	MontantPaye decimal.Decimal  `json:"montantPaye"`
}

// ClientResponse salida de un cliente con sus compras.
type ClientResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Address         string                `json:"address"`
	Phone           string                `json:"phone"`
	ProduitsAchetes []entity.PurchaseLine `json:"produitsAchetes"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// PurchasePaymentResponse línea de compra actualizada.
type PurchasePaymentResponse struct {
	Message  string              `json:"message"`
	Purchase entity.PurchaseLine `json:"purchase"`
}
