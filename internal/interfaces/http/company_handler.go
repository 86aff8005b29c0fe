package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// CompanyHandler empresa del llamador, ajustes, paneles y markets.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	markets *usecase.MarketUseCase
	errorResponder
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, markets *usecase.MarketUseCase, er errorResponder) *CompanyHandler {
	return &CompanyHandler{uc: uc, markets: markets, errorResponder: er}
}

// Get godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *CompanyHandler) Settings(c *fiber.Ctx) error {
	out, err := h.uc.Settings(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings tarifas por defecto de la empresa.
func (h *CompanyHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados de la empresa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/company-stats [get]
func (h *CompanyHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *CompanyHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ── Markets ─────────────────────────────────────────────────────────────────

func (h *CompanyHandler) ListMarkets(c *fiber.Ctx) error {
	out, err := h.markets.List(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ListMarketsWithCounts vista ejecutiva con el número de usuarios por market.
func (h *CompanyHandler) ListMarketsWithCounts(c *fiber.Ctx) error {
	out, err := h.markets.ListWithCounts(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *CompanyHandler) CreateMarket(c *fiber.Ctx) error {
	var in dto.MarketRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.markets.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CompanyHandler) UpdateMarket(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in dto.MarketRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.markets.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// DeleteMarket desasigna usuarios, turnos y amonestaciones antes de borrar.
func (h *CompanyHandler) DeleteMarket(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := h.markets.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
