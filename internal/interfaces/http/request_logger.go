package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/pkg/logger"
)

// LocalRequestID la deja el middleware requestid de fiber.
const LocalRequestID = "requestid"

// RequestLogger registra método, ruta, status, latencia y request id de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Resolver el status antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		requestID, _ := c.Locals(LocalRequestID).(string)
		rl := log.Request(requestID)
		ev := rl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = rl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = rl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
