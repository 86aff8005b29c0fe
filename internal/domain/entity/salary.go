package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPayment pago registrado contra el salario acumulado de un usuario.
type SalaryPayment struct {
	ID     string
	UserID string
	Amount decimal.Decimal
	Period string // ej. "2026-09"
	PaidAt time.Time
}
