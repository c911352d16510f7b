package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo cerrado de transacción de un partenaire, asignado al escribir.
type TransactionType string

const (
	TransactionBuy        TransactionType = "buy"
	TransactionSupply     TransactionType = "supply"
	TransactionSettlement TransactionType = "settlement"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSupply, TransactionSettlement:
		return true
	}
	return false
}

// Partner contraparte que puede actuar como comprador o proveedor dentro del mismo libro.
type Partner struct {
	ID           string
	Name         string
	Identifier   string
	Contact      string
	Transactions []Transaction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transaction evento buy/supply/settlement del libro de un partenaire.
// Product puede venir vacío (producto aún no creado).
type Transaction struct {
	ID        string          `json:"id"`
	Product   string          `json:"product,omitempty"`
	Quantity  int64           `json:"quantite"`
	UnitPrice decimal.Decimal `json:"prixUnitaire"`
	Type      TransactionType `json:"type"`
	Total     decimal.Decimal `json:"montantTotal"`
	Paid      decimal.Decimal `json:"montantPaye"`
	Remaining decimal.Decimal `json:"resteAPayer"`
	Status    LineStatus      `json:"status"`
	Date      time.Time       `json:"date"`
}

// FindTransaction busca una transacción por ID.
func (p *Partner) FindTransaction(txID string) *Transaction {
	for i := range p.Transactions {
		if p.Transactions[i].ID == txID {
			return &p.Transactions[i]
		}
	}
	return nil
}
