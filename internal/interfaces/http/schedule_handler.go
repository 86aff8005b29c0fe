package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// ScheduleHandler turnos.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
	errorResponder
}

func NewScheduleHandler(uc *usecase.ScheduleUseCase, er errorResponder) *ScheduleHandler {
	return &ScheduleHandler{uc: uc, errorResponder: er}
}

// List godoc
// @Summary      Turnos visibles para el llamador
// @Tags         schedules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ScheduleResponse
// @Router       /api/schedules [get]
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Asignar turno a un usuario del alcance
// @Tags         schedules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateScheduleRequest  true  "Turno"
// @Success      201   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateScheduleRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
