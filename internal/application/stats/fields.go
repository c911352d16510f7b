package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// num número tolerante: acepta número, string numérico o null. Cualquier otra cosa
// cuenta como ausente, igual que un campo que no existe.
type num struct {
	decimal.NullDecimal
}

func (n *num) UnmarshalJSON(b []byte) error {
	n.NullDecimal = decimal.NullDecimal{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// first devuelve el primer valor presente (semántica de ??) o cero.
func first(vals ...num) decimal.Decimal {
	for _, v := range vals {
		if v.Valid {
			return v.Decimal
		}
	}
	return decimal.Zero
}

// present indica si alguno de los valores está presente.
func present(vals ...num) bool {
	for _, v := range vals {
		if v.Valid {
			return true
		}
	}
	return false
}

// stamp fecha tolerante: RFC3339 o null; un formato desconocido cuenta como ausente.
type stamp struct {
	time.Time
}

func (s *stamp) UnmarshalJSON(b []byte) error {
	s.Time = time.Time{}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil || raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			s.Time = t
			return nil
		}
	}
	return nil
}

func firstTime(vals ...stamp) time.Time {
	for _, v := range vals {
		if !v.IsZero() {
			return v.Time
		}
	}
	return time.Time{}
}

// productRef referencia a producto: un ID o un objeto embebido (documentos antiguos).
type productRef struct {
	ID            string
	Name          string
	PurchasePrice num
	SalePrice     num
}

func (p *productRef) UnmarshalJSON(b []byte) error {
	*p = productRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &p.ID)
	}
	if b[0] != '{' {
		return nil
	}
	var obj struct {
		MongoID       string `json:"_id"`
		ID            string `json:"id"`
		Nom           string `json:"nom"`
		Name          string `json:"name"`
		PrixAchat     num    `json:"prixAchat"`
		PurchasePrice num    `json:"purchasePrice"`
		PrixVente     num    `json:"prixVente"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	p.ID = obj.ID
	if p.ID == "" {
		p.ID = obj.MongoID
	}
	p.Name = obj.Nom
	if p.Name == "" {
		p.Name = obj.Name
	}
	if obj.PrixAchat.Valid {
		p.PurchasePrice = obj.PrixAchat
	} else {
		p.PurchasePrice = obj.PurchasePrice
	}
	p.SalePrice = obj.PrixVente
	return nil
}
