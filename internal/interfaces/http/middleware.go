package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver registra cada respuesta HTTP (lo implementa metrics.Recorder).
type RequestObserver interface {
	ObserveRequest(method, route string, status int)
}

// RequestMetrics cuenta las respuestas por método, ruta registrada y status.
// Se usa la plantilla de ruta para no disparar la cardinalidad con ids.
func RequestMetrics(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveRequest(c.Method(), c.Route().Path, status)
		return err
	}
}

// RequestLogger log estructurado por request.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		ev := log.Info()
		if status := c.Response().StatusCode(); status >= fiber.StatusInternalServerError || err != nil {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
