package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// Allocation monto aplicado a la transacción en la posición Index.
type Allocation struct {
	Index  int
	Amount decimal.Decimal
}

// Distribute reparte amount sobre las transacciones con restante > 0, de la más antigua
// a la más reciente, aplicando min(restante, saldo) a cada una. Devuelve las asignaciones
// en orden de aplicación y el saldo que no se pudo asignar. No modifica txs.
func Distribute(txs []entity.Transaction, amount decimal.Decimal) ([]Allocation, decimal.Decimal) {
	if !amount.IsPositive() {
		return nil, decimal.Zero
	}
	pending := make([]int, 0, len(txs))
	for i := range txs {
		if txs[i].Remaining.IsPositive() {
			pending = append(pending, i)
		}
	}
	sort.SliceStable(pending, func(a, b int) bool {
		return txs[pending[a]].Date.Before(txs[pending[b]].Date)
	})

	left := amount
	var out []Allocation
	for _, i := range pending {
		if !left.IsPositive() {
			break
		}
		apply := decimal.Min(left, txs[i].Remaining)
		out = append(out, Allocation{Index: i, Amount: apply})
		left = left.Sub(apply)
	}
	return out, left
}
