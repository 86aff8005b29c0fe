package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
)

// SalaryHandler saldo acumulado, pagos y extracto en PDF.
type SalaryHandler struct {
	uc *usecase.SalaryUseCase
	errorResponder
}

func NewSalaryHandler(uc *usecase.SalaryUseCase, er errorResponder) *SalaryHandler {
	return &SalaryHandler{uc: uc, errorResponder: er}
}

func (h *SalaryHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Extracto salarial propio en PDF
// @Tags         salary
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/salary/me/statement [get]
func (h *SalaryHandler) Statement(c *fiber.Ctx) error {
	pdf, err := h.uc.Statement(c.UserContext(), GetUser(c))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="salary-statement.pdf"`)
	return c.Send(pdf)
}

func (h *SalaryHandler) ForStaff(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ForStaff(c.UserContext(), GetUser(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// RecordPayment godoc
// @Summary      Registrar pago contra el salario acumulado
// @Tags         salary
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salary/payments [post]
func (h *SalaryHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if bind(c, &in) != nil {
		return nil
	}
	out, err := h.uc.RecordPayment(c.UserContext(), GetUser(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
