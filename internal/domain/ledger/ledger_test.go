package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Recompute
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_PagoParcialQuedaPendiente(t *testing.T) {
	d := ledger.Recompute(dec(10), 3, dec(12))

	assert.Equal(t, "30", d.Total.String())
	assert.Equal(t, "12", d.Paid.String())
	assert.Equal(t, "18", d.Remaining.String())
	assert.Equal(t, entity.StatusPending, d.Status)
}

func TestRecompute_SobrepagoNoDejaRestanteNegativo(t *testing.T) {
	d := ledger.Recompute(dec(5), 2, dec(50))

	assert.Equal(t, "10", d.Total.String())
	assert.True(t, d.Remaining.IsZero())
	assert.Equal(t, entity.StatusPaid, d.Status)
}

func TestRecompute_NegativosComoCero(t *testing.T) {
	d := ledger.Recompute(dec(-4), -2, dec(-1))

	assert.True(t, d.Total.IsZero())
	assert.True(t, d.Paid.IsZero())
	assert.True(t, d.Remaining.IsZero())
	assert.Equal(t, entity.StatusPaid, d.Status, "total cero cuenta como pagado")
}

func TestRecomputeTransaction_IgnoraCamposDerivadosDelLlamador(t *testing.T) {
	tx := entity.Transaction{
		UnitPrice: dec(7),
		Quantity:  4,
		Paid:      dec(8),
		Total:     dec(999),
		Remaining: dec(-3),
		Status:    entity.StatusPaid,
	}
	ledger.RecomputeTransaction(&tx)

	assert.Equal(t, "28", tx.Total.String())
	assert.Equal(t, "20", tx.Remaining.String())
	assert.Equal(t, entity.StatusPending, tx.Status)
}

func TestRecomputeDelivery(t *testing.T) {
	l := entity.DeliveryLine{PurchasePrice: dec(3), Quantity: 10, Paid: dec(30)}
	ledger.RecomputeDelivery(&l)

	assert.Equal(t, "30", l.Total.String())
	assert.True(t, l.Remaining.IsZero())
	assert.Equal(t, entity.StatusPaid, l.Status)
}

func TestDerivePurchase_ConPrecioVenta(t *testing.T) {
	l := entity.PurchaseLine{
		PurchasePrice: dec(6),
		SalePrice:     decimal.NewNullDecimal(dec(10)),
		Quantity:      3,
		Paid:          dec(5),
	}
	ledger.DerivePurchase(&l)

	assert.Equal(t, "30", l.Total.String())
	require.True(t, l.Margin.Valid)
	assert.Equal(t, "4", l.Margin.Decimal.String())
	assert.Equal(t, "25", l.Remaining.String())
}

func TestDerivePurchase_SinPrecioVentaUsaCosto(t *testing.T) {
	l := entity.PurchaseLine{PurchasePrice: dec(6), Quantity: 2, Paid: dec(20)}
	ledger.DerivePurchase(&l)

	assert.Equal(t, "12", l.Total.String())
	assert.False(t, l.Margin.Valid)
	assert.Equal(t, "-8", l.Remaining.String(), "el restante de cliente no se acota")
}

func TestAddPayment_RechazaMontoNoPositivo(t *testing.T) {
	_, err := ledger.AddPayment(dec(10), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.AddPayment(dec(10), dec(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	paid, err := ledger.AddPayment(dec(10), dec(5))
	require.NoError(t, err)
	assert.Equal(t, "15", paid.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Distribute
// ──────────────────────────────────────────────────────────────────────────────

func pendingTx(id string, remaining int64, at time.Time) entity.Transaction {
	return entity.Transaction{
		ID:        id,
		Type:      entity.TransactionSupply,
		Quantity:  1,
		UnitPrice: dec(remaining),
		Total:     dec(remaining),
		Remaining: dec(remaining),
		Status:    entity.StatusPending,
		Date:      at,
	}
}

func TestDistribute_MasAntiguaPrimero(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Orden de inserción distinto al cronológico.
	txs := []entity.Transaction{
		pendingTx("c", 50, base.Add(48*time.Hour)),
		pendingTx("a", 30, base),
		pendingTx("b", 20, base.Add(24*time.Hour)),
	}

	allocs, left := ledger.Distribute(txs, dec(45))

	require.Len(t, allocs, 2)
	assert.Equal(t, 1, allocs[0].Index)
	assert.Equal(t, "30", allocs[0].Amount.String())
	assert.Equal(t, 2, allocs[1].Index)
	assert.Equal(t, "15", allocs[1].Amount.String())
	assert.True(t, left.IsZero())
	assert.Equal(t, "50", txs[0].Remaining.String(), "Distribute no muta la entrada")
}

func TestDistribute_SaldoSobrante(t *testing.T) {
	base := time.Now()
	paid := pendingTx("p", 0, base)
	paid.Status = entity.StatusPaid
	txs := []entity.Transaction{paid, pendingTx("a", 10, base.Add(time.Hour))}

	allocs, left := ledger.Distribute(txs, dec(25))

	require.Len(t, allocs, 1)
	assert.Equal(t, 1, allocs[0].Index)
	assert.Equal(t, "10", allocs[0].Amount.String())
	assert.Equal(t, "15", left.String())
}

func TestDistribute_MontoNoPositivo(t *testing.T) {
	allocs, left := ledger.Distribute([]entity.Transaction{pendingTx("a", 10, time.Now())}, decimal.Zero)
	assert.Empty(t, allocs)
	assert.True(t, left.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Net / Fold / Settle
// ──────────────────────────────────────────────────────────────────────────────

func TestNet_PositivoSignificaQueDebemos(t *testing.T) {
	supply := entity.Transaction{Type: entity.TransactionSupply, UnitPrice: dec(10), Quantity: 10, Paid: dec(40)}
	buy := entity.Transaction{Type: entity.TransactionBuy, UnitPrice: dec(5), Quantity: 6, Paid: dec(10)}
	settlement := entity.Transaction{Type: entity.TransactionSettlement, UnitPrice: dec(1000), Quantity: 1}
	for _, tx := range []*entity.Transaction{&supply, &buy, &settlement} {
		ledger.RecomputeTransaction(tx)
	}

	s := ledger.Net([]entity.Transaction{supply, buy, settlement})

	assert.Equal(t, "100", s.Supply.Total.String())
	assert.Equal(t, "40", s.Supply.Paid.String())
	assert.Equal(t, "60", s.Supply.Remaining.String())
	assert.Equal(t, "30", s.Buy.Total.String())
	assert.Equal(t, "20", s.Buy.Remaining.String())
	assert.Equal(t, "70", s.Net.String())
	assert.Equal(t, "40", s.NetRemaining.String())
}

func TestFold_TotalesDeFactura(t *testing.T) {
	acc := ledger.Fold([]ledger.Amounts{
		{Total: dec(100), Paid: dec(40), Remaining: dec(60)},
		{Total: dec(50), Paid: dec(50), Remaining: decimal.Zero},
	})

	assert.Equal(t, "150", acc.Total.String())
	assert.Equal(t, "90", acc.Paid.String())
	assert.Equal(t, "60", acc.Remaining.String())
}

func TestSettle_Aritmetica(t *testing.T) {
	s := ledger.Settle(
		[]ledger.SettleItem{{Price: dec(10), Quantity: dec(3)}},
		[]ledger.SettleItem{{Price: dec(4), Quantity: dec(5)}},
	)

	assert.Equal(t, "30", s.TotalA.String())
	assert.Equal(t, "20", s.TotalB.String())
	assert.Equal(t, "10", s.Net.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// ClassifyLegacyType
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyLegacyType(t *testing.T) {
	cases := map[string]ledger.FlowKind{
		"client":      ledger.FlowSale,
		"Sale":        ledger.FlowSale,
		"SUPPLY":      ledger.FlowSale,
		"vente":       ledger.FlowSale,
		" sold ":      ledger.FlowSale,
		"fournisseur": ledger.FlowPurchase,
		"Supplier":    ledger.FlowPurchase,
		"buy":         ledger.FlowPurchase,
		"ACHAT":       ledger.FlowPurchase,
		"purchased":   ledger.FlowPurchase,
		"":            ledger.FlowUnknown,
		"settlement":  ledger.FlowUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ledger.ClassifyLegacyType(raw), "tipo %q", raw)
	}
}
