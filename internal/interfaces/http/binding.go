package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores de campo se reportan con el nombre JSON, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errBadBody ya escrito en la respuesta; el handler solo debe retornar.
var errBadBody = errors.New("cuerpo rechazado")

// bind decodifica el JSON de forma estricta (campos desconocidos -> 400) y valida los tags.
// Si devuelve error la respuesta 400 ya está escrita: el handler retorna nil.
func bind(c *fiber.Ctx, out any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
		return errBadBody
	}
	if dec.More() {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
		return errBadBody
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		resp := dto.ValidationErrorResponse{Code: "VALIDATION", Message: "Validation failed"}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				resp.Fields = append(resp.Fields, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(resp)
		return errBadBody
	}
	return nil
}

// pathID lee :id y exige que no esté vacío.
func pathID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if id == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
		return "", false
	}
	return id, true
}
