package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/prolist-cm/protect-api/internal/application/auth"
	"github.com/prolist-cm/protect-api/internal/application/dto"
	"github.com/prolist-cm/protect-api/internal/domain"
)

// AuthHandler maneja registro, login y verificación de identidad.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register alta de usuario buyer/seller con teléfono + PIN.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login acceso con teléfono + PIN; devuelve JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		// No distinguir "no existe" de "PIN malo" hacia afuera.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el usuario autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return c.JSON(auth.ToUserResponse(user))
}

// SubmitVerification pasa al usuario a revisión de identidad (PENDING).
func (h *AuthHandler) SubmitVerification(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	if err := h.uc.SubmitVerification(c.Context(), user); err != nil {
		return mapError(c, err)
	}
	return c.JSON(auth.ToUserResponse(user))
}

// ReviewVerification decisión del admin sobre una verificación pendiente.
func (h *AuthHandler) ReviewVerification(c *fiber.Ctx) error {
	reviewer := GetCurrentUser(c)
	if reviewer == nil {
		return unauthorized(c)
	}
	var in dto.ReviewVerificationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ReviewVerification(c.Context(), reviewer, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListAgents lista los agentes disponibles (solo admin).
func (h *AuthHandler) ListAgents(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListAgents(c.Context(), user, pageFromQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
