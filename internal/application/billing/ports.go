package billing

import "context"

// Format formato de salida de una factura.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

// ParseFormat normaliza el formato pedido; cualquier valor desconocido es JSON.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatPDF, FormatXML:
		return Format(s)
	}
	return FormatJSON
}

// Document representación binaria de una factura lista para descargar.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// InvoiceRenderer puerto de salida para generar documentos (PDF, XML, ...).
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *Invoice) (*Document, error)
}
