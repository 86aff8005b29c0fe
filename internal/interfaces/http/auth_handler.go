package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/auth"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
)

// AuthHandler maneja registro, login, logout y la sesión actual.
type AuthHandler struct {
	uc *auth.AuthUseCase
	errorResponder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, er errorResponder) *AuthHandler {
	return &AuthHandler{uc: uc, errorResponder: er}
}

// RegisterCompany godoc
// @Summary      Registrar empresa y owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "Empresa y primer usuario"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register-company [post]
func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.RegisterCompany(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Register godoc
// @Summary      Registrar empleado en una empresa existente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, companyCode"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, companyCode"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar la sesión actual
// @Tags         auth
// @Security     Bearer
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetToken(c)); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary      Usuario autenticado con empresa y contrato activo
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ChangePassword verifica la actual y revoca el resto de sesiones del usuario.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if bind(c, &in) != nil {
		return nil
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUser(c), GetToken(c), in); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password updated"})
}
