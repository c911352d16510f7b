package partner_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/inventory"
	"github.com/jhoicas/gestion-api/internal/application/partner"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	uc    *partner.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	uc := partner.NewUseCase(repos, store, inventory.NewStockService(), billing.NewBuilder(repos.Products))
	return &fixture{store: store, uc: uc}
}

func (f *fixture) product(t *testing.T, id string, qty int64, achat, vente int64) {
	t.Helper()
	p := &entity.Product{
		ID:            id,
		Name:          "Produit " + id,
		Quantity:      qty,
		PurchasePrice: decimal.NewFromInt(achat),
		CreatedAt:     time.Now(),
	}
	if vente > 0 {
		p.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(vente))
	}
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), p))
}

func (f *fixture) partner(t *testing.T, name string) string {
	t.Helper()
	p, err := f.uc.Create(context.Background(), dto.CreatePartnerRequest{Name: name})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) quantity(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
func decPtr(v int64) *decimal.Decimal {
	d := dec(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// AddTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestAddTransaction_SupplySumaStockYDerivaTotales(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 5, 8, 12)
	id := f.partner(t, "Atlas")

	out, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
		Type: "supply", ProductID: "p1", Quantite: 10, PrixUnitaire: decPtr(9), MontantPaye: dec(30),
	})

	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	tx := out.Transactions[0]
	assert.Equal(t, "90", tx.Total.String())
	assert.Equal(t, "60", tx.Remaining.String())
	assert.Equal(t, entity.StatusPending, tx.Status)
	assert.Equal(t, int64(15), f.quantity(t, "p1"))
}

func TestAddTransaction_SupplyConProductDataCreaProducto(t *testing.T) {
	f := newFixture(t)
	id := f.partner(t, "Atlas")

	out, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
		Type:        "supply",
		ProductData: &dto.ProductDataRequest{Nom: "Brique", PrixAchat: dec(2), PrixVente: decPtr(3)},
		Quantite:    100,
	})

	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	productID := out.Transactions[0].Product
	require.NotEmpty(t, productID)
	assert.Equal(t, int64(100), f.quantity(t, productID))
	assert.Equal(t, "3", out.Transactions[0].UnitPrice.String(), "precio por defecto: prixVente")
}

func TestAddTransaction_BuySinStockNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 2, 8, 12)
	id := f.partner(t, "Atlas")

	_, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
		Type: "buy", ProductID: "p1", Quantite: 3,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.quantity(t, "p1"))
	got, err := f.uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, got.Transactions)
}

func TestAddTransaction_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10, 8, 12)
	id := f.partner(t, "Atlas")
	ctx := context.Background()

	_, err := f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "gift", ProductID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = f.uc.AddTransaction(ctx, "admin", "nope", dto.AddTransactionRequest{Type: "buy", ProductID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "buy", ProductID: "p1", Quantite: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "buy", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrMissingProduct)

	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "supply", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrMissingProduct)

	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "supply", ProductID: "ghost", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddTransaction_BuysConcurrentesNoSobrevenden(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 5, 8, 12)
	id := f.partner(t, "Atlas")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
				Type: "buy", ProductID: "p1", Quantite: 1,
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, int64(0), f.quantity(t, "p1"))
	got, err := f.uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, got.Transactions, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePayment_CompletaLaTransaccion(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 0, 10, 0)
	id := f.partner(t, "Atlas")
	out, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
		Type: "supply", ProductID: "p1", Quantite: 3, MontantPaye: dec(10),
	})
	require.NoError(t, err)
	txID := out.Transactions[0].ID

	tx, err := f.uc.UpdatePayment(context.Background(), id, txID, dec(20))

	require.NoError(t, err)
	assert.Equal(t, "30", tx.Paid.String())
	assert.True(t, tx.Remaining.IsZero())
	assert.Equal(t, entity.StatusPaid, tx.Status)

	_, err = f.uc.UpdatePayment(context.Background(), id, txID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.uc.UpdatePayment(context.Background(), id, "ghost", dec(1))
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestDistributePayment_MasAntiguaPrimero(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 0, 10, 0)
	id := f.partner(t, "Atlas")
	for _, q := range []int64{3, 2, 5} {
		_, err := f.uc.AddTransaction(context.Background(), "admin", id, dto.AddTransactionRequest{
			Type: "supply", ProductID: "p1", Quantite: q,
		})
		require.NoError(t, err)
	}

	out, err := f.uc.DistributePayment(context.Background(), id, dec(45))

	require.NoError(t, err)
	require.Len(t, out.Applied, 2)
	assert.Equal(t, "30", out.Applied[0].Amount.String())
	assert.Equal(t, "15", out.Applied[1].Amount.String())
	assert.True(t, out.Unallocated.IsZero())
	assert.Equal(t, entity.StatusPaid, out.Partner.Transactions[0].Status)
	assert.Equal(t, "5", out.Partner.Transactions[1].Remaining.String())
	assert.Equal(t, "50", out.Partner.Transactions[2].Remaining.String())

	_, err = f.uc.DistributePayment(context.Background(), id, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary / Transfer / Settle
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_NetoEntreSupplyYBuy(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 0, 10, 0)
	id := f.partner(t, "Atlas")
	ctx := context.Background()
	_, err := f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "supply", ProductID: "p1", Quantite: 10, MontantPaye: dec(40)})
	require.NoError(t, err)
	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "buy", ProductID: "p1", Quantite: 3, PrixUnitaire: decPtr(5)})
	require.NoError(t, err)

	s, err := f.uc.Summary(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "100", s.Supply.Total.String())
	assert.Equal(t, "15", s.Buy.Total.String())
	assert.Equal(t, "85", s.Net.String())
	assert.Equal(t, "45", s.NetRemaining.String())
}

func TestTransfer_RegistraAmbosLadosYConservaStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10, 6, 9)
	from := f.partner(t, "Atlas")
	to := f.partner(t, "Boreal")

	out, err := f.uc.Transfer(context.Background(), from, to, dto.TransferRequest{ProductID: "p1", Quantite: 4})

	require.NoError(t, err)
	assert.Equal(t, "Transfer enregistré", out.Message)
	require.Len(t, out.From.Transactions, 1)
	require.Len(t, out.To.Transactions, 1)
	assert.Equal(t, entity.TransactionBuy, out.From.Transactions[0].Type)
	assert.Equal(t, "36", out.From.Transactions[0].Total.String())
	assert.Equal(t, entity.TransactionSupply, out.To.Transactions[0].Type)
	assert.Equal(t, "24", out.To.Transactions[0].Total.String())
	assert.Equal(t, entity.StatusPending, out.To.Transactions[0].Status)
	assert.Equal(t, int64(10), f.quantity(t, "p1"))
}

func TestTransfer_FallaSinTocarNingunLibro(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 2, 6, 9)
	from := f.partner(t, "Atlas")
	to := f.partner(t, "Boreal")
	ctx := context.Background()

	_, err := f.uc.Transfer(ctx, from, to, dto.TransferRequest{ProductID: "p1", Quantite: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.uc.Transfer(ctx, from, from, dto.TransferRequest{ProductID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Transfer(ctx, from, "ghost", dto.TransferRequest{ProductID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	for _, id := range []string{from, to} {
		p, err := f.uc.Get(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, p.Transactions)
	}
	assert.Equal(t, int64(2), f.quantity(t, "p1"))
}

func TestSettle_MensajeSegunSigno(t *testing.T) {
	f := newFixture(t)
	a := f.partner(t, "Atlas")
	b := f.partner(t, "Boreal")

	out, err := f.uc.Settle(context.Background(), a, b, dto.SettleRequest{
		PartnerAItems: []dto.SettleItemRequest{{Prix: decPtr(10), Quantite: dec(3)}},
		PartnerBItems: []dto.SettleItemRequest{{Price: decPtr(4), Quantite: dec(5)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "10", out.Net.String())
	assert.Equal(t, "Partner A owes B 10", out.Message)
	assert.Equal(t, "Partner B owes A 7", partner.SettleMessage(dec(-7)))
	assert.Equal(t, "Partner B owes A 0", partner.SettleMessage(decimal.Zero))

	got, err := f.uc.Get(context.Background(), a)
	require.NoError(t, err)
	assert.Empty(t, got.Transactions, "settle no escribe")

	_, err = f.uc.Settle(context.Background(), a, "ghost", dto.SettleRequest{})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)
}

func TestInvoice_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10, 10, 0)
	id := f.partner(t, "Atlas")
	ctx := context.Background()
	_, err := f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "supply", ProductID: "p1", Quantite: 2, MontantPaye: dec(5)})
	require.NoError(t, err)
	_, err = f.uc.AddTransaction(ctx, "admin", id, dto.AddTransactionRequest{Type: "buy", ProductID: "p1", Quantite: 1})
	require.NoError(t, err)

	inv, doc, err := f.uc.Invoice(ctx, id, entity.TransactionSupply, billing.FormatJSON, billing.Period{})

	require.NoError(t, err)
	assert.Nil(t, doc)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Produit p1", inv.Items[0].ProductName)
	assert.Equal(t, "20", inv.Totals.Total.String())
	assert.Equal(t, "15", inv.Totals.Remaining.String())
}

func TestDelete_PartnerInexistente(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), "ghost"), domain.ErrPartnerNotFound)
}
