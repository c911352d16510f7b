package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fournisseur proveedor con su historial de entregas embebido.
type Fournisseur struct {
	ID         string
	Name       string
	Contact    int64
	Deliveries []DeliveryLine // produitsFournis
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeliveryLine una entrega de un proveedor. Total, Remaining y Status se derivan siempre.
type DeliveryLine struct {
	ID            string          `json:"id"`
	Product       string          `json:"product"`
	Quantity      int64           `json:"quantite"`
	PurchasePrice decimal.Decimal `json:"prixAchat"`
	Total         decimal.Decimal `json:"montantTotal"`
	Paid          decimal.Decimal `json:"montantPaye"`
	Remaining     decimal.Decimal `json:"resteAPayer"`
	Status        LineStatus      `json:"status"`
	Date          time.Time       `json:"dateFourniture"`
}

// FindDelivery busca una entrega por ID de línea.
func (f *Fournisseur) FindDelivery(lineID string) *DeliveryLine {
	for i := range f.Deliveries {
		if f.Deliveries[i].ID == lineID {
			return &f.Deliveries[i]
		}
	}
	return nil
}
