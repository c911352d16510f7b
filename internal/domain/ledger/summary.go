package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// Amounts triple total / pagado / restante.
type Amounts struct {
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
}

func (a Amounts) add(b Amounts) Amounts {
	return Amounts{
		Total:     a.Total.Add(b.Total),
		Paid:      a.Paid.Add(b.Paid),
		Remaining: a.Remaining.Add(b.Remaining),
	}
}

// Fold suma los montos de una lista de ítems (totales de factura).
func Fold(items []Amounts) Amounts {
	var acc Amounts
	for _, it := range items {
		acc = acc.add(it)
	}
	return acc
}

// NetSummary balance de un partenaire. Net > 0: le debemos al partenaire; Net < 0: nos debe.
type NetSummary struct {
	Supply       Amounts
	Buy          Amounts
	Net          decimal.Decimal // supply.total − buy.total
	NetRemaining decimal.Decimal // supply.remaining − buy.remaining
}

// Net agrupa las transacciones supply y buy; las de tipo settlement no entran al balance.
func Net(txs []entity.Transaction) NetSummary {
	var s NetSummary
	for _, t := range txs {
		a := Amounts{Total: t.Total, Paid: t.Paid, Remaining: t.Remaining}
		switch t.Type {
		case entity.TransactionSupply:
			s.Supply = s.Supply.add(a)
		case entity.TransactionBuy:
			s.Buy = s.Buy.add(a)
		}
	}
	s.Net = s.Supply.Total.Sub(s.Buy.Total)
	s.NetRemaining = s.Supply.Remaining.Sub(s.Buy.Remaining)
	return s
}

// SettleItem par precio/cantidad ad hoc (no es una línea persistida).
type SettleItem struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Settlement resultado del cálculo neto entre dos partenaires.
type Settlement struct {
	TotalA decimal.Decimal
	TotalB decimal.Decimal
	Net    decimal.Decimal // totalA − totalB
}

// Settle calcula los totales de ambos lados y el neto. No toca ningún libro.
func Settle(a, b []SettleItem) Settlement {
	ta, tb := sumItems(a), sumItems(b)
	return Settlement{TotalA: ta, TotalB: tb, Net: ta.Sub(tb)}
}

func sumItems(items []SettleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}
	return total
}
