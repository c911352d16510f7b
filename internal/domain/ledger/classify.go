package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// FlowKind dirección económica de una línea: venta, compra o desconocida.
type FlowKind int

const (
	FlowUnknown FlowKind = iota
	FlowSale
	FlowPurchase
)

func (k FlowKind) String() string {
	switch k {
	case FlowSale:
		return "vente"
	case FlowPurchase:
		return "achat"
	}
	return "unknown"
}

var (
	saleTypes = map[string]struct{}{
		"client": {}, "sale": {}, "supply": {}, "vente": {}, "sold": {},
	}
	purchaseTypes = map[string]struct{}{
		"fournisseur": {}, "supplier": {}, "buy": {}, "achat": {}, "purchased": {},
	}
)

// ClassifyLegacyType clasifica los vocabularios históricos de tipo (sin distinguir mayúsculas).
// Solo debe usarse al leer datos antiguos; las escrituras nuevas llevan un tipo cerrado.
func ClassifyLegacyType(raw string) FlowKind {
	key := cases.Fold().String(strings.TrimSpace(raw))
	if _, ok := saleTypes[key]; ok {
		return FlowSale
	}
	if _, ok := purchaseTypes[key]; ok {
		return FlowPurchase
	}
	return FlowUnknown
}
