package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// CreateFournisseurRequest entrada para crear un proveedor.
type CreateFournisseurRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Contact int64  `json:"contact" validate:"min=0"`
}

// UpdateFournisseurRequest actualización parcial de un proveedor.
type UpdateFournisseurRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Contact *int64  `json:"contact" validate:"omitempty,min=0"`
}

// AddDeliveryRequest entrega de un proveedor; suma stock. PrixAchat por defecto es el del producto.
type AddDeliveryRequest struct {
	ProductID   string           `json:"productId"`
	Quantite    int64            `json:"quantite"`
	PrixAchat   *decimal.Decimal `json:"prixAchat"`
	MontantPaye decimal.Decimal  `json:"montantPaye"`
}

// FournisseurResponse salida de un proveedor con sus entregas.
type FournisseurResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Contact         int64                 `json:"contact"`
	ProduitsFournis []entity.DeliveryLine `json:"produitsFournis"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// DeliveryPaymentResponse entrega actualizada.
type DeliveryPaymentResponse struct {
	Message  string              `json:"message"`
	Delivery entity.DeliveryLine `json:"delivery"`
}
