package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/metrics"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

// RequestLogger registra cada petición y alimenta las métricas HTTP.
// El label de ruta es el patrón (/api/users/:id) para no disparar la cardinalidad.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status.
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)

		route := c.Route().Path
		metrics.RecordHTTPRequest(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed)
		if id := GetUserID(c); id != "" {
			ev = ev.Str("user_id", id)
		}
		ev.Msg("http request")
		return nil
	}
}
