package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	auth := app.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	habits := app.Group("/api/habits")
	habits.Get("", handler.OptionalAuth, handler.ListHabits)
	habits.Post("", handler.RequireAuth, handler.CreateHabit)
	habits.Get("/:id", handler.GetHabit)
	habits.Put("/:id", handler.RequireAuth, handler.UpdateHabit)
	habits.Delete("/:id", handler.RequireAuth, handler.DeleteHabit)
	habits.Post("/:id/check-in", handler.RequireAuth, handler.CheckIn)
	habits.Post("/:id/undo-check-in", handler.RequireAuth, handler.UndoCheckIn)
}
