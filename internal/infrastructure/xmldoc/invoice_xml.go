// Package xmldoc serializa facturas a XML con etree.
//
// Estructura:
//
//	<Facture numero=".." type="..">
//	  <Date>RFC3339</Date>
//	  <Emetteur>..</Emetteur>
//	  <Contrepartie id=".."><Nom/><Identifiant/><Contact/></Contrepartie>
//	  <Lignes><Ligne no="1">..</Ligne></Lignes>
//	  <Totaux><Total/><Paye/><Reste/></Totaux>
//	</Facture>
package xmldoc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/pkg/config"
)

var _ billing.InvoiceRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer implementa billing.InvoiceRenderer para el formato XML.
type InvoiceRenderer struct {
	company config.InvoiceConfig
}

func NewInvoiceRenderer(company config.InvoiceConfig) *InvoiceRenderer {
	return &InvoiceRenderer{company: company}
}

// Render construye el árbol y lo serializa indentado con declaración UTF-8.
func (r *InvoiceRenderer) Render(_ context.Context, inv *billing.Invoice) (*billing.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Facture")
	root.CreateAttr("numero", inv.Number)
	root.CreateAttr("type", inv.Type)
	root.CreateElement("Date").SetText(inv.Date.UTC().Format(time.RFC3339))

	em := root.CreateElement("Emetteur")
	setChild(em, "Nom", r.company.CompanyName)
	setChild(em, "Adresse", r.company.CompanyAddress)
	setChild(em, "Telephone", r.company.CompanyPhone)

	cp := root.CreateElement("Contrepartie")
	if inv.Counterparty.ID != "" {
		cp.CreateAttr("id", inv.Counterparty.ID)
	}
	setChild(cp, "Nom", inv.Counterparty.Name)
	setChild(cp, "Identifiant", inv.Counterparty.Identifier)
	setChild(cp, "Contact", inv.Counterparty.Contact)
	setChild(cp, "Adresse", inv.Counterparty.Address)
	setChild(cp, "Telephone", inv.Counterparty.Phone)

	lines := root.CreateElement("Lignes")
	for i, it := range inv.Items {
		l := lines.CreateElement("Ligne")
		l.CreateAttr("no", strconv.Itoa(i+1))
		if it.ID != "" {
			l.CreateAttr("id", it.ID)
		}
		p := l.CreateElement("Produit")
		if it.ProductID != "" {
			p.CreateAttr("id", it.ProductID)
		}
		p.SetText(it.ProductName)
		setChild(l, "Marque", it.Brand)
		setChild(l, "Categorie", it.Category)
		l.CreateElement("Quantite").SetText(strconv.FormatInt(it.Quantity, 10))
		l.CreateElement("PrixUnitaire").SetText(it.UnitPrice.StringFixed(2))
		l.CreateElement("Total").SetText(it.Total.StringFixed(2))
		l.CreateElement("Paye").SetText(it.Paid.StringFixed(2))
		l.CreateElement("Reste").SetText(it.Remaining.StringFixed(2))
		if !it.Date.IsZero() {
			l.CreateElement("Date").SetText(it.Date.UTC().Format(time.RFC3339))
		}
	}

	tot := root.CreateElement("Totaux")
	tot.CreateElement("Total").SetText(inv.Totals.Total.StringFixed(2))
	tot.CreateElement("Paye").SetText(inv.Totals.Paid.StringFixed(2))
	tot.CreateElement("Reste").SetText(inv.Totals.Remaining.StringFixed(2))

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar factura: %w", err)
	}
	return &billing.Document{
		ContentType: "application/xml",
		Filename:    inv.Number + ".xml",
		Body:        body,
	}, nil
}

// setChild omite elementos vacíos.
func setChild(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}
