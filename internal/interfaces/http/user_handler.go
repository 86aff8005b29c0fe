package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// UserHandler perfil propio, gestión de usuarios y vista de equipo.
type UserHandler struct {
	uc *usecase.UserUseCase
	errorResponder
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, er errorResponder) *UserHandler {
	return &UserHandler{uc: uc, errorResponder: er}
}

// Me godoc
// @Summary      Perfil propio
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.FromUser(GetUser(c)))
}

// UpdateMe godoc
// @Summary      Actualizar perfil propio (name, phone, profilePicture, theme, accentColor, language)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos editables"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// SetTwoFactor activa o desactiva el indicador de doble factor.
func (h *UserHandler) SetTwoFactor(c *fiber.Ctx) error {
	var in dto.TwoFactorRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.SetTwoFactor(c.UserContext(), GetUser(c), *in.Enabled)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios dentro del alcance del llamador
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Create alta de usuario por un rol de gestión (POST /api/admin/users).
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (rol, tarifas, market, standing, password)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos editables"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateUserRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListStaff usuarios con rol staff dentro del alcance.
func (h *UserHandler) ListStaff(c *fiber.Ctx) error {
	out, err := h.uc.ListStaff(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) UpdateStanding(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateStandingRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.UpdateStanding(c.UserContext(), GetUser(c), id, in.Standing)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Team staff del alcance con el turno de hoy.
func (h *UserHandler) Team(c *fiber.Ctx) error {
	out, err := h.uc.Team(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
