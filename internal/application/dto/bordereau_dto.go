package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// BordereauTotalsRequest solo el pagado es de entrada; el resto se recalcula.
type BordereauTotalsRequest struct {
	Paye decimal.Decimal `json:"paye"`
}

// BordereauRequest entrada de creación y actualización (reemplazo completo).
type BordereauRequest struct {
	Type      string                   `json:"type" validate:"omitempty,oneof=facture bon_de_livraison bordereau"`
	Company   entity.BordereauCompany  `json:"company"`
	Partner   entity.BordereauParty    `json:"partner"`
	Livraison entity.BordereauDelivery `json:"livraison"`
	Items     []entity.BordereauItem   `json:"items" validate:"dive"`
	Totals    BordereauTotalsRequest   `json:"totals"`
	Notes     string                   `json:"notes"`
}

// BordereauResponse salida de un bordereau.
type BordereauResponse struct {
	ID        string                   `json:"id"`
	Type      entity.BordereauType     `json:"type"`
	Company   entity.BordereauCompany  `json:"company"`
	Partner   entity.BordereauParty    `json:"partner"`
	Livraison entity.BordereauDelivery `json:"livraison"`
	Items     []entity.BordereauItem   `json:"items"`
	Totals    entity.BordereauTotals   `json:"totals"`
	Notes     string                   `json:"notes"`
	CreatedBy string                   `json:"createdBy"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// BordereauPageResponse página de bordereaux con el total de coincidencias.
type BordereauPageResponse struct {
	Data       []BordereauResponse `json:"data"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

// BordereauEnvelope bordereau con mensaje opcional, como lo devuelven create/get/update.
type BordereauEnvelope struct {
	Message   string            `json:"message,omitempty"`
	Bordereau BordereauResponse `json:"bordereau"`
}
