package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/infrastructure/metrics"
)

// RequestLogger registra cada petición (método, ruta, status, latencia, request id) y
// alimenta las métricas HTTP si m no es nil. Nunca registra cuerpos ni headers.
func RequestLogger(log zerolog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		rid, _ := c.Locals("requestid").(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("request_id", rid).
			Msg("petición HTTP")

		if m != nil {
			m.ObserveHTTP(c.Method(), route, strconv.Itoa(status), latency)
		}
		return nil
	}
}
