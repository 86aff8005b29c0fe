package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// ResourceHandler amonestaciones, caja, contratos, SOS y notificaciones.
type ResourceHandler struct {
	warnings      *usecase.WarningUseCase
	cash          *usecase.CashRegisterUseCase
	contracts     *usecase.ContractUseCase
	sos           *usecase.SOSUseCase
	notifications *usecase.NotificationUseCase
	errorResponder
}

// ResourceUseCases agrupa los casos de uso que sirve ResourceHandler.
type ResourceUseCases struct {
	Warnings      *usecase.WarningUseCase
	Cash          *usecase.CashRegisterUseCase
	Contracts     *usecase.ContractUseCase
	SOS           *usecase.SOSUseCase
	Notifications *usecase.NotificationUseCase
}

func NewResourceHandler(ucs ResourceUseCases, er errorResponder) *ResourceHandler {
	return &ResourceHandler{
		warnings:       ucs.Warnings,
		cash:           ucs.Cash,
		contracts:      ucs.Contracts,
		sos:            ucs.SOS,
		notifications:  ucs.Notifications,
		errorResponder: er,
	}
}

// ── Amonestaciones ───────────────────────────────────────────────────────────

func (h *ResourceHandler) ListWarnings(c *fiber.Ctx) error {
	out, err := h.warnings.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateWarning godoc
// @Summary      Emitir amonestación a un usuario del alcance
// @Tags         warnings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarningRequest  true  "Amonestación"
// @Success      201   {object}  dto.WarningResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warnings [post]
func (h *ResourceHandler) CreateWarning(c *fiber.Ctx) error {
	var in dto.CreateWarningRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.warnings.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ResourceHandler) ResolveWarning(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.warnings.Resolve(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ── Caja ─────────────────────────────────────────────────────────────────────

func (h *ResourceHandler) ListCash(c *fiber.Ctx) error {
	out, err := h.cash.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateCash registra el cuadre de caja del llamador.
func (h *ResourceHandler) CreateCash(c *fiber.Ctx) error {
	var in dto.CreateCashEntryRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.cash.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Contratos ────────────────────────────────────────────────────────────────

func (h *ResourceHandler) ListContracts(c *fiber.Ctx) error {
	out, err := h.contracts.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CurrentContract responde null si el llamador no tiene contrato activo.
func (h *ResourceHandler) CurrentContract(c *fiber.Ctx) error {
	out, err := h.contracts.Current(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ResourceHandler) CreateContract(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.contracts.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ResourceHandler) UpdateContract(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateContractRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.contracts.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ResourceHandler) RequestRenewal(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.contracts.RequestRenewal(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ── SOS ──────────────────────────────────────────────────────────────────────

// CreateSOS godoc
// @Summary      Disparar alerta SOS (notifica a los ejecutivos de la empresa)
// @Tags         sos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSOSRequest  true  "Tipo de alerta"
// @Success      201   {object}  dto.SOSResponse
// @Router       /api/sos [post]
func (h *ResourceHandler) CreateSOS(c *fiber.Ctx) error {
	var in dto.CreateSOSRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.sos.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ResourceHandler) ListSOS(c *fiber.Ctx) error {
	out, err := h.sos.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ResourceHandler) ResolveSOS(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.sos.Resolve(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ── Notificaciones ───────────────────────────────────────────────────────────

func (h *ResourceHandler) ListNotifications(c *fiber.Ctx) error {
	out, err := h.notifications.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ResourceHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.notifications.MarkRead(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
