package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawDocument vista de lectura de un documento con sus líneas sin decodificar.
// Las líneas pueden tener cualquier forma histórica; los adaptadores de estadísticas
// las normalizan.
type RawDocument struct {
	ID        string
	Kind      string // tipo tal como está guardado (client, fournisseur, ...)
	Partner   string // nombre de la contraparte
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	CreatedAt time.Time
	Lines     json.RawMessage
}
