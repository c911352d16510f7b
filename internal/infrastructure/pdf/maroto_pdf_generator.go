// Package pdf genera la representación imprimible de una facture con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + contacto   │  FACTURE + N° + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: Nombre / ID / contacto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: No | Produit | Marque | Catégorie | Qte | PU | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Payé / Reste                               │
//	│  FIRMAS + QR con el número                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/pkg/config"
)

var _ billing.InvoiceRenderer = (*InvoiceRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	headerBg     = &props.Cell{BackgroundColor: colorPrimary}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// InvoiceRenderer implementa billing.InvoiceRenderer para el formato PDF.
type InvoiceRenderer struct {
	company config.InvoiceConfig
}

// NewInvoiceRenderer construye el renderer con los datos de la empresa emisora.
func NewInvoiceRenderer(company config.InvoiceConfig) *InvoiceRenderer {
	return &InvoiceRenderer{company: company}
}

// Render genera el PDF y devuelve sus bytes como documento descargable.
func (g *InvoiceRenderer) Render(_ context.Context, inv *billing.Invoice) (*billing.Document, error) {
	cfg := mconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+inv.Number, true).
		WithAuthor(nonEmpty(g.company.CompanyName, "-"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartyRow(inv.Counterparty))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(row.New(6))
	m.AddRows(signatureRow(inv.Number))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &billing.Document{
		ContentType: "application/pdf",
		Filename:    inv.Number + ".pdf",
		Body:        doc.GetBytes(),
	}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número + fecha (der).
func (g *InvoiceRenderer) headerRow(inv *billing.Invoice) core.Row {
	contact := joinNonEmpty("   |   ", g.company.CompanyAddress, g.company.CompanyPhone)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.company.CompanyName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N°: "+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Date: "+inv.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func counterpartyRow(c billing.Counterparty) core.Row {
	details := joinNonEmpty("   |   ",
		prefixed("ID: ", c.Identifier), c.Contact, c.Address, prefixed("Tél: ", c.Phone))
	return row.New(16).Add(
		col.New(12).Add(
			text.New("Client / Fournisseur", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(details, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(headerBg)
	}
	return row.New(8).Add(
		h("No", 1, align.Center),
		h("Produit", 3, align.Left),
		h("Marque", 2, align.Left),
		h("Catégorie", 2, align.Left),
		h("Qte", 1, align.Center),
		h("PU", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea; los campos vacíos se imprimen como "-".
func tableItemRows(items []billing.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, row.New(7).Add(
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(nonEmpty(it.ProductName, "-"), 3, align.Left),
			cell(nonEmpty(it.Brand, "-"), 2, align.Left),
			cell(nonEmpty(it.Category, "-"), 2, align.Left),
			cell(strconv.FormatInt(it.Quantity, 10), 1, align.Center),
			cell(money(it.UnitPrice), 1, align.Right),
			cell(money(it.Total), 2, align.Right),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *billing.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:", 1),
			label("Payé:", 7),
			text.New("Reste:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(3).Add(
			value(money(inv.Totals.Total), 1),
			value(money(inv.Totals.Paid), 7),
			text.New(money(inv.Totals.Remaining), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// signatureRow: firmas de ambas partes y un QR con el número para archivo.
func signatureRow(number string) core.Row {
	sign := func(label string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2}),
			text.New("______________________", props.Text{Size: 8, Align: align.Center, Top: 18, Color: colorGray}),
		)
	}
	return row.New(30).Add(
		sign("Signature émetteur"),
		sign("Signature client"),
		col.New(4).Add(code.NewQr(number, props.Rect{Percent: 80, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
