package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// RequestHandler solicitudes de tiempo libre y reportes.
type RequestHandler struct {
	uc *usecase.RequestUseCase
	errorResponder
}

func NewRequestHandler(uc *usecase.RequestUseCase, er errorResponder) *RequestHandler {
	return &RequestHandler{uc: uc, errorResponder: er}
}

// List godoc
// @Summary      Solicitudes visibles (staff: solo las propias)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Actionable pendientes que el llamador puede revisar (nunca las suyas).
func (h *RequestHandler) Actionable(c *fiber.Ctx) error {
	out, err := h.uc.Actionable(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Crear solicitud (el dueño es siempre el llamador)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "Solicitud"
// @Success      201   {object}  dto.RequestResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar una solicitud pendiente
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la solicitud"
// @Param        body  body  dto.UpdateRequestStatusRequest  true  "approved | declined"
// @Success      200   {object}  dto.RequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateRequestStatusRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
