package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkoster/tally/internal/services"
)

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	viewerID := ""
	if claims, ok := requestClaims(c); ok {
		viewerID = claims.ID
	}

	habits, err := handler.habits.List(viewerID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habits")
	}
	return c.JSON(habits)
}

func (handler *Handler) GetHabit(c *fiber.Ctx) error {
	habit, err := handler.habits.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	var input services.CreateHabitInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	claims, _ := requestClaims(c)
	habit, err := handler.habits.Create(claims.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			return apiError(c, fiber.StatusBadRequest, "name is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	var input services.UpdateHabitInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	habit, err := handler.habits.Update(c.Params("id"), input)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	if err := handler.habits.Delete(c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete habit")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) CheckIn(c *fiber.Ctx) error {
	habit, err := handler.habits.CheckIn(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to check in")
	}
	return c.JSON(habit)
}

func (handler *Handler) UndoCheckIn(c *fiber.Ctx) error {
	habit, err := handler.habits.UndoCheckIn(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to undo check-in")
	}
	return c.JSON(habit)
}
