package entity

// LineStatus estado de pago de una línea o documento.
type LineStatus string

const (
	StatusPaid    LineStatus = "paid"
	StatusPending LineStatus = "pending"
)
