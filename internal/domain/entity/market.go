package entity

import "time"

// Market es una sucursal/ubicación física dentro de una Company.
type Market struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
}

// MarketWithCount market con el número de usuarios asignados (vista ejecutiva).
type MarketWithCount struct {
	Market
	UserCount int
}
