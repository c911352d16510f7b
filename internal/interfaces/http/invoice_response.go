package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/domain"
)

// parsePeriod lee ?from=&to= (YYYY-MM-DD o RFC3339). Una fecha sin hora en "to"
// incluye el día completo.
func parsePeriod(c *fiber.Ctx) (billing.Period, error) {
	var p billing.Period
	if s := c.Query("from"); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return p, fmt.Errorf("from: %w", domain.ErrInvalidInput)
		}
		p.From = t
	}
	if s := c.Query("to"); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return p, fmt.Errorf("to: %w", domain.ErrInvalidInput)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		p.To = t
	}
	return p, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

// sendInvoice responde {invoice: ...} en JSON o el documento binario renderizado.
func sendInvoice(c *fiber.Ctx, inv *billing.Invoice, doc *billing.Document) error {
	if doc == nil {
		return c.JSON(billing.ToResponse(inv))
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Body)
}
