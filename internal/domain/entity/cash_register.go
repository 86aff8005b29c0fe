package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cuadre de caja.
const (
	CashStatusShortage = "shortage"
	CashStatusExact    = "exact"
	CashStatusExtra    = "extra"
)

// CashShortageAlertThreshold faltante a partir del cual se genera notificación.
var CashShortageAlertThreshold = decimal.NewFromInt(10)

// CashRegisterEntry cuadre de caja al cierre de un turno.
type CashRegisterEntry struct {
	ID        string
	UserID    string
	ShiftDate time.Time
	Status    string
	Amount    decimal.Decimal
	Notes     string
	CreatedAt time.Time
}
