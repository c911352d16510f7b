package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client cliente con su historial de compras embebido.
type Client struct {
	ID        string
	Name      string
	Email     string // único
	Address   string
	Phone     string
	Purchases []PurchaseLine // produitsAchetes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PurchaseLine una compra de un cliente. Solo es direccionable vía cliente + ID de línea.
type PurchaseLine struct {
	ID            string              `json:"id"`
	Product       string              `json:"product"`
	Quantity      int64               `json:"quantite"`
	PurchasePrice decimal.Decimal     `json:"prixAchat"`
	SalePrice     decimal.NullDecimal `json:"prixVente"`
	Margin        decimal.NullDecimal `json:"marge"`
	Total         decimal.Decimal     `json:"montantTotal"`
	Paid          decimal.Decimal     `json:"montantPaye"`
	Remaining     decimal.Decimal     `json:"resteAPayer"`
	Date          time.Time           `json:"dateAchat"`
}

// FindPurchase busca una línea por su ID; si no existe, por ID de producto (clientes antiguos).
func (c *Client) FindPurchase(lineID string) *PurchaseLine {
	for i := range c.Purchases {
		if c.Purchases[i].ID == lineID {
			return &c.Purchases[i]
		}
	}
	for i := range c.Purchases {
		if c.Purchases[i].Product == lineID {
			return &c.Purchases[i]
		}
	}
	return nil
}
