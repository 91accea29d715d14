package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nationsapi/nations-service/internal/api/dto"
	"github.com/nationsapi/nations-service/internal/service"
	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// AuthHandler exposes registration and token issuance.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /nationapi/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	principal, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.RegisterResponse{Email: principal.Email},
	})
}

// Authenticate handles POST /nationapi/authenticate.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, exp, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

func bindCredentials(c *fiber.Ctx) (dto.CredentialsRequest, error) {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := dto.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}
