package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// Code es el código de acceso que los empleados usan en el login, guardado en mayúsculas.
type Company struct {
	ID                 string
	Name               string
	Code               string
	Address            string
	DefaultHourlyRate  decimal.Decimal
	DefaultHolidayRate decimal.Decimal
	CreatedAt          time.Time
}

// Tarifas por defecto cuando la empresa no define las suyas.
var (
	DefaultHourlyRate  = decimal.RequireFromString("15.00")
	DefaultHolidayRate = decimal.RequireFromString("22.50")
)
