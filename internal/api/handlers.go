package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkoster/tally/internal/services"
	"github.com/mkoster/tally/internal/store"
)

// Handler wires the identity service and the habit resource manager to
// the HTTP surface.
type Handler struct {
	auth   *services.AuthService
	habits *services.HabitService
}

func NewHandler(documents store.Store, secret string) *Handler {
	return &Handler{
		auth:   services.NewAuthService(documents, []byte(secret)),
		habits: services.NewHabitService(documents),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
