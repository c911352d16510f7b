package stats_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/application/stats"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
	"github.com/jhoicas/gestion-api/internal/infrastructure/memory"
)

var now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func clock() time.Time { return now }

// seed arma un mes con una factura cliente de hoy, una de proveedor del mes, una del mes
// anterior y un historial embebido en cliente y proveedor.
func seed(t *testing.T, withTodayFacture bool) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()

	require.NoError(t, r.Products.Create(ctx, &entity.Product{
		ID: "p1", Name: "Ciment", Quantity: 10, PurchasePrice: dec(6),
		SalePrice: decimal.NewNullDecimal(dec(10)), CreatedAt: now,
	}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{
		ID: "p2", Name: "Brique", Quantity: 5, PurchasePrice: dec(3), CreatedAt: now,
	}))

	require.NoError(t, r.Clients.Create(ctx, &entity.Client{
		ID: "c1", Name: "Amal", Email: "amal@example.com", CreatedAt: now,
		Purchases: []entity.PurchaseLine{{
			ID: "l1", Product: "p1", Quantity: 1, PurchasePrice: dec(6),
			SalePrice: decimal.NewNullDecimal(dec(10)), Total: dec(10), Paid: dec(4),
			Date: now.Add(-30 * time.Minute),
		}},
	}))
	require.NoError(t, r.Fournisseurs.Create(ctx, &entity.Fournisseur{
		ID: "f1", Name: "Sahel", CreatedAt: now,
		Deliveries: []entity.DeliveryLine{{
			ID: "d1", Product: "p2", Quantity: 2, PurchasePrice: dec(3), Total: dec(6),
			Date: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
		}},
	}))

	if withTodayFacture {
		require.NoError(t, r.Factures.Create(ctx, &entity.Facture{
			ID: "fa-today", Type: entity.FactureClient, ClientID: "c1",
			Lines: []entity.FactureLine{{
				Product: "p1", Quantity: 2, UnitPrice: dec(10),
				PurchasePrice: decimal.NewNullDecimal(dec(6)), Total: dec(20),
			}},
			Total: dec(20), Paid: dec(5), Remaining: dec(15), CreatedAt: now.Add(-time.Hour),
		}))
	}
	require.NoError(t, r.Factures.Create(ctx, &entity.Facture{
		ID: "fa-month", Type: entity.FactureFournisseur, FournisseurID: "f1",
		Lines: []entity.FactureLine{{
			Product: "p2", Quantity: 4, UnitPrice: dec(3),
			PurchasePrice: decimal.NewNullDecimal(dec(3)), Total: dec(12),
		}},
		Total: dec(12), Paid: dec(12), CreatedAt: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, r.Factures.Create(ctx, &entity.Facture{
		ID: "fa-old", Type: entity.FactureClient, ClientID: "c1",
		Lines: []entity.FactureLine{{Product: "p1", Quantity: 50, UnitPrice: dec(10), Total: dec(500)}},
		Total: dec(500), CreatedAt: time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC),
	}))
	return store
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregator
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_TotalesAditivos(t *testing.T) {
	store := seed(t, true)
	agg := stats.NewAggregator(memory.NewStatsRepository(store), stats.Options{IncludeEmbedded: true, Clock: clock}, nil)

	out, err := agg.Compute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stats.Message, out.Message)
	assert.Equal(t, int64(2), out.TotalProduits)
	assert.Equal(t, int64(1), out.TotalClients)
	assert.Equal(t, int64(1), out.TotalFournisseurs)
	assert.Equal(t, int64(3), out.TotalFactures)
	assert.Equal(t, int64(2), out.FacturesClients)
	assert.Equal(t, int64(1), out.FacturesFournisseurs)
	assert.Equal(t, "75", out.ValeurProduits.String())
	// facturas: venta 20, achat 12; embebidos: venta 10 + costo 6, entrega 6
	assert.Equal(t, "30", out.VentesMensuelles.String())
	assert.Equal(t, "24", out.AchatsMensuels.String())
	assert.Equal(t, "6", out.MargesMensuelles.String())

	require.Len(t, out.TodayJournal, 1, "con facturas hoy el journal no usa los historiales")
	row := out.TodayJournal[0]
	assert.Equal(t, "fa-today", row.ID)
	assert.Equal(t, "client", row.Type)
	assert.Equal(t, "Amal", row.Partner)
	assert.Equal(t, "Ciment", row.Product)
	assert.Equal(t, "20", row.MontantTotal.String())
	assert.Equal(t, "5", row.MontantPaye.String())
	assert.Equal(t, "15", row.Reste.String())
	assert.Equal(t, "6", row.PrixAchat.String())
}

func TestCompute_SinEmbebidos(t *testing.T) {
	store := seed(t, true)
	agg := stats.NewAggregator(memory.NewStatsRepository(store), stats.Options{IncludeEmbedded: false, Clock: clock}, nil)

	out, err := agg.Compute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "20", out.VentesMensuelles.String())
	assert.Equal(t, "12", out.AchatsMensuels.String())
	assert.Equal(t, "8", out.MargesMensuelles.String())
}

func TestCompute_JournalUsaHistorialesSinFacturasHoy(t *testing.T) {
	store := seed(t, false)
	agg := stats.NewAggregator(memory.NewStatsRepository(store), stats.Options{IncludeEmbedded: true, Clock: clock}, nil)

	out, err := agg.Compute(context.Background())

	require.NoError(t, err)
	require.Len(t, out.TodayJournal, 1)
	row := out.TodayJournal[0]
	assert.Equal(t, "l1", row.ID)
	assert.Equal(t, "client", row.Type)
	assert.Equal(t, "10", row.PrixUnitaire.String())
	assert.Equal(t, "4", row.MontantPaye.String())
	assert.Equal(t, "6", row.Reste.String())
}

func TestCompute_Idempotente(t *testing.T) {
	store := seed(t, true)
	agg := stats.NewAggregator(memory.NewStatsRepository(store), stats.Options{IncludeEmbedded: true, Clock: clock}, nil)

	a, err := agg.Compute(context.Background())
	require.NoError(t, err)
	b, err := agg.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestVentanas_MesYDia(t *testing.T) {
	m := stats.MonthOf(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), m.From)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), m.To)
	assert.False(t, m.Contains(m.To))

	d := stats.DayOf(now)
	assert.True(t, d.Contains(now))
	assert.False(t, d.Contains(d.To))
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores con formas históricas
// ──────────────────────────────────────────────────────────────────────────────

func TestFactureLines_FormasAntiguas(t *testing.T) {
	doc := entity.RawDocument{
		ID:   "legacy",
		Kind: "Sale",
		Lines: json.RawMessage(`{"items":[
			{"qty":"2","price":5,"product":{"_id":"x","nom":"Vis","prixAchat":1}},
			{"quantite":0,"prixUnitaire":99}
		]}`),
	}

	items, err := stats.FactureLines(doc, nil)

	require.NoError(t, err)
	require.Len(t, items, 1, "cantidad cero se omite")
	assert.Equal(t, ledger.FlowSale, items[0].Flow)
	assert.Equal(t, "Vis", items[0].ProductName)
	assert.Equal(t, "1", items[0].CostPrice.String())
	sale, cost := items[0].Contribution()
	assert.Equal(t, "10", sale.String())
	assert.True(t, cost.IsZero())
}

func TestFactureLines_TipoDesconocido(t *testing.T) {
	doc := entity.RawDocument{
		ID:    "u",
		Kind:  "",
		Lines: json.RawMessage(`[{"quantite":3,"prixUnitaire":0,"prixAchat":4},{"quantite":1,"prixVente":"7"}]`),
	}

	items, err := stats.FactureLines(doc, nil)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ledger.FlowPurchase, items[0].Flow)
	assert.Equal(t, ledger.FlowSale, items[1].Flow)
	_, cost := items[0].Contribution()
	assert.Equal(t, "12", cost.String())
}

func TestFactureLines_ProductoPorIDSeResuelveEnCatalogo(t *testing.T) {
	catalog := stats.Catalog{"p9": {ID: "p9", Name: "Sable", PurchasePrice: dec(2)}}
	doc := entity.RawDocument{
		ID:    "f",
		Kind:  "fournisseur",
		Lines: json.RawMessage(`{"produits":[{"product":"p9","quantite":5,"prixUnitaire":3}]}`),
	}

	items, err := stats.FactureLines(doc, catalog)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sable", items[0].ProductName)
	assert.Equal(t, "2", items[0].CostPrice.String())
}

func TestFactureLines_RepartePagoPorLinea(t *testing.T) {
	doc := entity.RawDocument{
		ID:        "r",
		Kind:      "client",
		Paid:      dec(10),
		Remaining: dec(20),
		Lines:     json.RawMessage(`[{"quantite":1,"prixUnitaire":10},{"quantite":2,"prixUnitaire":10}]`),
	}

	items, err := stats.FactureLines(doc, nil)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "3.33", items[0].Paid.String())
	assert.Equal(t, "6.67", items[1].Paid.String())
	assert.Equal(t, "6.67", items[0].Remaining.String())
	assert.Equal(t, "13.33", items[1].Remaining.String())
}

func TestFournisseurLines_FechaPorPrioridad(t *testing.T) {
	doc := entity.RawDocument{
		ID:      "f",
		Partner: "Sahel",
		Lines: json.RawMessage(`[
			{"quantite":1,"prixAchat":4,"date":"2025-03-01T00:00:00Z","dateFourniture":"2025-01-01T00:00:00Z"},
			{"quantite":1,"prixAchat":4}
		]`),
	}

	items, err := stats.FournisseurLines(doc, nil)

	require.NoError(t, err)
	require.Len(t, items, 1, "sin fecha no cuenta")
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), items[0].Date)
	assert.Equal(t, ledger.FlowPurchase, items[0].Flow)
}

func TestJournal_OrdenDescendente(t *testing.T) {
	rows := stats.Journal([]stats.LineItem{
		{DocumentID: "a", Date: now.Add(-2 * time.Hour)},
		{DocumentID: "b", Date: now},
		{DocumentID: "c", Date: now.Add(-time.Hour)},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
}
