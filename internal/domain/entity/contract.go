package entity

import "time"

// Contract contrato laboral de un usuario.
type Contract struct {
	ID               string
	UserID           string
	StartDate        time.Time
	EndDate          time.Time
	IsActive         bool
	NoticeDate       *time.Time
	RenewalRequested bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
