package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

// Period filtro por fecha de línea. Un extremo cero queda abierto; To es exclusivo.
type Period struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && !t.Before(p.To) {
		return false
	}
	return true
}

// Counterparty datos de la contraparte impresos en la factura.
type Counterparty struct {
	ID         string
	Name       string
	Identifier string
	Contact    string
	Address    string
	Phone      string
}

// InvoiceItem línea uniforme de factura, venga de una transacción o de una compra.
type InvoiceItem struct {
	ID          string
	ProductID   string
	ProductName string
	Brand       string
	Category    string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Remaining   decimal.Decimal
	Date        time.Time
}

// Invoice vista materializada de una factura de partenaire o de cliente.
type Invoice struct {
	Number       string
	Type         string // buy, supply, client
	Date         time.Time
	Counterparty Counterparty
	Items        []InvoiceItem
	Totals       ledger.Amounts
}
