package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePartyDTO contraparte de la factura.
type InvoicePartyDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	Contact    string `json:"contact,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// InvoiceProductDTO producto referenciado por una línea.
type InvoiceProductDTO struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Marque    string `json:"marque"`
	Categorie string `json:"categorie"`
}

// InvoiceItemDTO línea de factura.
type InvoiceItemDTO struct {
	ID           string             `json:"id"`
	Product      *InvoiceProductDTO `json:"product"`
	Quantite     int64              `json:"quantite"`
	PrixUnitaire decimal.Decimal    `json:"prixUnitaire"`
	MontantTotal decimal.Decimal    `json:"montantTotal"`
	MontantPaye  decimal.Decimal    `json:"montantPaye"`
	ResteAPayer  decimal.Decimal    `json:"resteAPayer"`
	Date         time.Time          `json:"date"`
}

// InvoiceTotalsDTO totales plegados.
type InvoiceTotalsDTO struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Reste decimal.Decimal `json:"reste"`
}

// InvoiceDTO factura materializada.
type InvoiceDTO struct {
	InvoiceNumber string           `json:"invoiceNumber"`
	Type          string           `json:"type"`
	Date          time.Time        `json:"date"`
	Partner       InvoicePartyDTO  `json:"partner"`
	Items         []InvoiceItemDTO `json:"items"`
	Totals        InvoiceTotalsDTO `json:"totals"`
}

// InvoiceResponse envoltorio JSON de la factura.
type InvoiceResponse struct {
	Invoice InvoiceDTO `json:"invoice"`
}
