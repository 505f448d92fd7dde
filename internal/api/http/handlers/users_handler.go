package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-shop-service/internal/api/dto"
	"github.com/spec-kit/coffee-shop-service/internal/service"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

// UsersHandler exposes registration and login.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if !req.Valid() {
		return apperrors.NewValidationError(msgMissingFields)
	}

	user, err := h.auth.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if !req.Valid() {
		return apperrors.NewValidationError(msgMissingFields)
	}

	user, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
	})
}
