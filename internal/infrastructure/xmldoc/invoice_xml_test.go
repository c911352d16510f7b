package xmldoc_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
	"github.com/jhoicas/gestion-api/internal/infrastructure/xmldoc"
	"github.com/jhoicas/gestion-api/pkg/config"
)

func TestRender_EstructuraXML(t *testing.T) {
	r := xmldoc.NewInvoiceRenderer(config.InvoiceConfig{CompanyName: "Ma Société"})
	inv := &billing.Invoice{
		Number:       "INV-ABC123-buy",
		Type:         "buy",
		Date:         time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Counterparty: billing.Counterparty{ID: "p1", Name: "Karim & Fils"},
		Items: []billing.InvoiceItem{
			{ID: "t1", ProductID: "pr1", ProductName: "Ciment", Quantity: 2, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(20), Remaining: decimal.NewFromInt(20)},
		},
		Totals: ledger.Amounts{Total: decimal.NewFromInt(20), Paid: decimal.Zero, Remaining: decimal.NewFromInt(20)},
	}

	doc, err := r.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "application/xml", doc.ContentType)
	assert.Equal(t, "INV-ABC123-buy.xml", doc.Filename)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc.Body))
	root := parsed.SelectElement("Facture")
	require.NotNil(t, root)
	assert.Equal(t, "INV-ABC123-buy", root.SelectAttrValue("numero", ""))
	assert.Equal(t, "Karim & Fils", root.FindElement("Contrepartie/Nom").Text())
	assert.Equal(t, "p1", root.FindElement("Contrepartie").SelectAttrValue("id", ""))

	lines := root.FindElements("Lignes/Ligne")
	require.Len(t, lines, 1)
	assert.Equal(t, "Ciment", lines[0].FindElement("Produit").Text())
	assert.Equal(t, "10.00", lines[0].FindElement("PrixUnitaire").Text())
	assert.Nil(t, lines[0].FindElement("Marque"), "los campos vacíos se omiten")
	assert.Equal(t, "20.00", root.FindElement("Totaux/Reste").Text())
}
