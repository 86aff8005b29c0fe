package entity

import "time"

// Schedule turno asignado a un usuario, opcionalmente en un market.
type Schedule struct {
	ID         string
	UserID     string
	MarketID   *string
	Date       time.Time
	StartTime  string // HH:MM
	EndTime    string
	BreakStart string
	BreakEnd   string
	Position   string
	CreatedAt  time.Time
}
