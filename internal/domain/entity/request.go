package entity

import "time"

// Tipos y estados de Request.
const (
	RequestTypeRequest = "request"
	RequestTypeReport  = "report"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDeclined = "declined"
)

// Request solicitud de tiempo libre o reporte de incidente creada por un empleado.
type Request struct {
	ID          string
	UserID      string
	Type        string
	Subject     string
	Details     string
	Status      string
	IsAnonymous bool
	ReviewedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequestWithOwner solicitud con el nombre del solicitante (vista del manager).
type RequestWithOwner struct {
	Request
	UserName string
}
