package entity

import "time"

// Estados de Warning.
const (
	WarningStatusActive   = "active"
	WarningStatusResolved = "resolved"
)

// Warning amonestación emitida a un usuario.
type Warning struct {
	ID             string
	UserID         string
	IssuedBy       string
	Reason         string
	Status         string
	IsFiringNotice bool
	MarketWide     bool
	MarketID       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
