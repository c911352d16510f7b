package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BordereauType tipo de documento comercial.
type BordereauType string

const (
	BordereauFacture      BordereauType = "facture"
	BordereauBonLivraison BordereauType = "bon_de_livraison"
	BordereauGeneric      BordereauType = "bordereau"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t BordereauType) Valid() bool {
	switch t {
	case BordereauFacture, BordereauBonLivraison, BordereauGeneric:
		return true
	}
	return false
}

// Bordereau documento comercial genérico; solo recalcula totales.
type Bordereau struct {
	ID        string
	Type      BordereauType
	Company   BordereauCompany
	Partner   BordereauParty
	Delivery  BordereauDelivery
	Items     []BordereauItem
	Totals    BordereauTotals
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BordereauCompany datos de la empresa emisora.
type BordereauCompany struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	MF      string `json:"mf"`
}

// BordereauParty datos del cliente o partenaire destinatario.
type BordereauParty struct {
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

// BordereauDelivery metadatos de la entrega.
type BordereauDelivery struct {
	Date      time.Time `json:"date"`
	Number    string    `json:"numero"`
	Carrier   string    `json:"transporteur"`
	Truck     string    `json:"camion"`
	DriverCIN string    `json:"cin"`
}

// BordereauItem línea libre del documento.
type BordereauItem struct {
	Designation string          `json:"designation"`
	Brand       string          `json:"marque"`
	Category    string          `json:"categorie"`
	Quantity    int64           `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prixUnitaire"`
	Amount      decimal.Decimal `json:"montant"`
}

// BordereauTotals totales del documento.
type BordereauTotals struct {
	TotalHT   decimal.Decimal `json:"totalHT"`
	Paid      decimal.Decimal `json:"paye"`
	Remaining decimal.Decimal `json:"reste"`
}

// RecalcTotals totalHT = Σ(montant o prixUnitaire×quantite); reste = max(0, totalHT − payé).
func (b *Bordereau) RecalcTotals() {
	total := decimal.Zero
	for i := range b.Items {
		it := &b.Items[i]
		if it.Amount.IsZero() {
			it.Amount = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		}
		total = total.Add(it.Amount)
	}
	b.Totals.TotalHT = total
	if b.Totals.Paid.IsNegative() {
		b.Totals.Paid = decimal.Zero
	}
	b.Totals.Remaining = decimal.Max(decimal.Zero, total.Sub(b.Totals.Paid))
}
