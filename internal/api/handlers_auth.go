package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mkoster/tally/internal/models"
	"github.com/mkoster/tally/internal/services"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "email and password required")
	}

	user, token, err := handler.auth.Register(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return apiError(c, fiber.StatusBadRequest, "user already exists")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	return c.JSON(sessionResponse{User: user.Public(), Token: token})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "email and password required")
	}

	user, token, err := handler.auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusBadRequest, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	return c.JSON(sessionResponse{User: user.Public(), Token: token})
}
