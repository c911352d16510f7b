package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/infrastructure/memory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) Render(_ context.Context, inv *billing.Invoice) (*billing.Document, error) {
	f.calls++
	return &billing.Document{ContentType: "application/pdf", Filename: inv.Number + ".pdf", Body: []byte("%PDF")}, nil
}

func partnerWithLedger() *entity.Partner {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &entity.Partner{
		ID:   "0f8e2d7c-1111-2222-3333-abcdef123456",
		Name: "Atlas",
		Transactions: []entity.Transaction{
			{ID: "t1", Product: "p-1", Type: entity.TransactionSupply, Quantity: 10, UnitPrice: dec(10), Total: dec(100), Paid: dec(40), Remaining: dec(60), Date: day},
			{ID: "t2", Product: "p-1", Type: entity.TransactionSupply, Quantity: 5, UnitPrice: dec(10), Total: dec(50), Paid: dec(50), Remaining: decimal.Zero, Date: day.AddDate(0, 1, 0)},
			{ID: "t3", Type: entity.TransactionBuy, Quantity: 1, UnitPrice: dec(7), Total: dec(7), Remaining: dec(7), Date: day},
		},
	}
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-123456-SUPPLY", billing.InvoiceNumber("0f8e2d7c-1111-2222-3333-abcdef123456", "supply"))
	assert.Equal(t, "INV-abc-BUY", billing.InvoiceNumber("abc", "buy"))
}

func TestBuildPartnerInvoice_TotalesPlegados(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: "p-1", Name: "Ciment", Brand: "Lafarge", Category: "BTP",
	}))
	b := billing.NewBuilder(store.Repos().Products)

	inv, err := b.BuildPartnerInvoice(context.Background(), partnerWithLedger(), entity.TransactionSupply, billing.Period{})
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, "INV-123456-SUPPLY", inv.Number)
	assert.Equal(t, "150", inv.Totals.Total.String())
	assert.Equal(t, "90", inv.Totals.Paid.String())
	assert.Equal(t, "60", inv.Totals.Remaining.String())
	assert.Equal(t, "Ciment", inv.Items[0].ProductName)
	assert.Equal(t, "Lafarge", inv.Items[0].Brand)
}

func TestBuildPartnerInvoice_FiltraPorPeriodo(t *testing.T) {
	b := billing.NewBuilder(nil)
	period := billing.Period{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	inv, err := b.BuildPartnerInvoice(context.Background(), partnerWithLedger(), entity.TransactionSupply, period)
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "t1", inv.Items[0].ID)
	assert.Equal(t, "100", inv.Totals.Total.String())
}

func TestBuildPartnerInvoice_TipoInvalido(t *testing.T) {
	_, err := billing.NewBuilder(nil).BuildPartnerInvoice(context.Background(), partnerWithLedger(), "gift", billing.Period{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildClientInvoice(t *testing.T) {
	c := &entity.Client{
		ID:   "client-000042",
		Name: "Karim",
		Purchases: []entity.PurchaseLine{
			{ID: "l1", Quantity: 2, PurchasePrice: dec(6), SalePrice: decimal.NewNullDecimal(dec(10)), Total: dec(20), Paid: dec(5), Remaining: dec(15)},
			{ID: "l2", Quantity: 1, PurchasePrice: dec(4), Total: dec(4), Paid: dec(4), Remaining: decimal.Zero},
		},
	}

	inv, err := billing.NewBuilder(nil).BuildClientInvoice(context.Background(), c, billing.Period{})
	require.NoError(t, err)

	assert.Equal(t, "INV-000042-CLIENT", inv.Number)
	assert.Equal(t, "10", inv.Items[0].UnitPrice.String())
	assert.Equal(t, "4", inv.Items[1].UnitPrice.String())
	assert.Equal(t, "24", inv.Totals.Total.String())
	assert.Equal(t, "15", inv.Totals.Remaining.String())
}

func TestRender_FallbackJSONSinRenderer(t *testing.T) {
	b := billing.NewBuilder(nil)
	inv, err := b.BuildPartnerInvoice(context.Background(), partnerWithLedger(), entity.TransactionBuy, billing.Period{})
	require.NoError(t, err)

	doc, err := b.Render(context.Background(), inv, billing.FormatPDF)
	require.NoError(t, err)
	assert.Nil(t, doc, "sin renderer PDF se responde en JSON")

	r := &fakeRenderer{}
	b.WithRenderer(billing.FormatPDF, r)
	doc, err = b.Render(context.Background(), inv, billing.FormatPDF)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, 1, r.calls)

	doc, err = b.Render(context.Background(), inv, billing.FormatJSON)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestToResponse(t *testing.T) {
	inv, err := billing.NewBuilder(nil).BuildPartnerInvoice(context.Background(), partnerWithLedger(), entity.TransactionBuy, billing.Period{})
	require.NoError(t, err)

	resp := billing.ToResponse(inv)
	assert.Equal(t, "Atlas", resp.Invoice.Partner.Name)
	require.Len(t, resp.Invoice.Items, 1)
	assert.Nil(t, resp.Invoice.Items[0].Product)
	assert.Equal(t, "7", resp.Invoice.Totals.Reste.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, billing.FormatPDF, billing.ParseFormat("pdf"))
	assert.Equal(t, billing.FormatXML, billing.ParseFormat("xml"))
	assert.Equal(t, billing.FormatJSON, billing.ParseFormat("docx"))
	assert.Equal(t, billing.FormatJSON, billing.ParseFormat(""))
}
