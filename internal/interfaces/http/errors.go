package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/auth"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// errorTable única tabla de traducción error de dominio -> HTTP. El orden importa:
// los sentinels más específicos van antes.
var errorTable = []errorMapping{
	{domain.ErrInvalidCompanyCode, fiber.StatusBadRequest, "INVALID_COMPANY_CODE", "Invalid company code"},
	{domain.ErrWrongPassword, fiber.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "Invalid input"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED", "Session expired"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
	{domain.ErrSelfReview, fiber.StatusForbidden, "FORBIDDEN", "Forbidden"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Forbidden"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Not found"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "Email already registered in this company"},
	{domain.ErrCompanyCodeExists, fiber.StatusConflict, "COMPANY_CODE_EXISTS", "Company code already in use"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "Invalid status transition"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "Conflict"},
	{domain.ErrLocked, fiber.StatusLocked, "LOCKED", "Account temporarily locked"},
}

// errorResponder escribe el error con la tabla; lo desconocido es 500 y solo se loguea.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var locked *auth.LockedError
	if errors.As(err, &locked) {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(locked.RetryAfter()))
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"})
}

// fiberErrorHandler cubre lo que Fiber rechaza antes de llegar a un handler (404 de ruta, 405, panics).
func fiberErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			if fe.Code == fiber.StatusNotFound {
				code = "NOT_FOUND"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return errorResponder{log: log}.respond(c, err)
	}
}
