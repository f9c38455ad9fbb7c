package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-docs/internal/application/dto"
)

// Pinger lo cumple *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio. Con db != nil incluye el estado de la base
// y responde 503 si no contesta.
// GET /health
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := dto.HealthResponse{Status: "ok", Service: service}
		if db == nil {
			return c.JSON(out)
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			out.Status = "degraded"
			out.Database = "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		out.Database = "up"
		return c.JSON(out)
	}
}
