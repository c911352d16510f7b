// Package ledger contiene los servicios de dominio que derivan los campos monetarios
// de las líneas de libro (transacciones de partenaires, entregas y compras).
// Todas las funciones son puras; los casos de uso las invocan antes de cada escritura.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// Derived campos derivados de una línea: total, pagado, restante y estado.
type Derived struct {
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    entity.LineStatus
}

// Recompute deriva total = unitPrice×quantity, remaining = max(0, total−paid) y
// status = paid si remaining ≤ 0. Entradas negativas se tratan como cero.
func Recompute(unitPrice decimal.Decimal, quantity int64, paid decimal.Decimal) Derived {
	unitPrice = nonNegative(unitPrice)
	paid = nonNegative(paid)
	if quantity < 0 {
		quantity = 0
	}
	total := unitPrice.Mul(decimal.NewFromInt(quantity))
	remaining := decimal.Max(decimal.Zero, total.Sub(paid))
	return Derived{
		Total:     total,
		Paid:      paid,
		Remaining: remaining,
		Status:    statusFor(remaining),
	}
}

// RecomputeTransaction aplica Recompute sobre una transacción de partenaire.
func RecomputeTransaction(t *entity.Transaction) {
	d := Recompute(t.UnitPrice, t.Quantity, t.Paid)
	if t.UnitPrice.IsNegative() {
		t.UnitPrice = decimal.Zero
	}
	if t.Quantity < 0 {
		t.Quantity = 0
	}
	t.Total, t.Paid, t.Remaining, t.Status = d.Total, d.Paid, d.Remaining, d.Status
}

// RecomputeDelivery aplica Recompute sobre una entrega de proveedor.
func RecomputeDelivery(l *entity.DeliveryLine) {
	d := Recompute(l.PurchasePrice, l.Quantity, l.Paid)
	if l.PurchasePrice.IsNegative() {
		l.PurchasePrice = decimal.Zero
	}
	if l.Quantity < 0 {
		l.Quantity = 0
	}
	l.Total, l.Paid, l.Remaining, l.Status = d.Total, d.Paid, d.Remaining, d.Status
}

// DerivePurchase deriva una compra de cliente: el total usa el precio de venta si existe,
// si no el costo; la marge es unitaria (venta − costo). El restante no se acota a cero.
func DerivePurchase(l *entity.PurchaseLine) {
	l.PurchasePrice = nonNegative(l.PurchasePrice)
	l.Paid = nonNegative(l.Paid)
	qty := decimal.NewFromInt(l.Quantity)
	if l.SalePrice.Valid {
		l.SalePrice.Decimal = nonNegative(l.SalePrice.Decimal)
		l.Margin = decimal.NewNullDecimal(l.SalePrice.Decimal.Sub(l.PurchasePrice))
		l.Total = l.SalePrice.Decimal.Mul(qty)
	} else {
		l.Margin = decimal.NullDecimal{}
		l.Total = l.PurchasePrice.Mul(qty)
	}
	l.Remaining = l.Total.Sub(l.Paid)
}

// AddPayment suma un pago adicional. amount debe ser estrictamente positivo.
func AddPayment(paid, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return paid, domain.ErrInvalidAmount
	}
	return nonNegative(paid).Add(amount), nil
}

// StatusFor estado correspondiente a un restante.
func StatusFor(remaining decimal.Decimal) entity.LineStatus {
	return statusFor(remaining)
}

func statusFor(remaining decimal.Decimal) entity.LineStatus {
	if remaining.LessThanOrEqual(decimal.Zero) {
		return entity.StatusPaid
	}
	return entity.StatusPending
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
