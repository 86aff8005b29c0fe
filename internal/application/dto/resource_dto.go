package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Turnos ───────────────────────────────────────────────────────────────────

// CreateScheduleRequest turno para un usuario explícito.
type CreateScheduleRequest struct {
	UserID     string  `json:"userId" validate:"required,uuid"`
	MarketID   *string `json:"marketId" validate:"omitempty,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime    string  `json:"endTime" validate:"required,datetime=15:04"`
	BreakStart string  `json:"breakStart" validate:"omitempty,datetime=15:04"`
	BreakEnd   string  `json:"breakEnd" validate:"omitempty,datetime=15:04"`
	Position   string  `json:"position" validate:"omitempty,max=100"`
}

// ScheduleResponse salida de un turno.
type ScheduleResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MarketID   *string   `json:"marketId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	BreakStart string    `json:"breakStart,omitempty"`
	BreakEnd   string    `json:"breakEnd,omitempty"`
	Position   string    `json:"position,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ── Solicitudes ──────────────────────────────────────────────────────────────

// CreateRequestRequest solicitud o reporte. UserID se acepta en el cuerpo pero se ignora:
// el dueño siempre es el usuario autenticado.
type CreateRequestRequest struct {
	UserID      string `json:"userId"`
	Type        string `json:"type" validate:"required,oneof=request report"`
	Subject     string `json:"subject" validate:"required,min=1,max=200"`
	Details     string `json:"details" validate:"omitempty,max=4000"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// UpdateRequestStatusRequest transición de estado.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved declined"`
}

// RequestResponse salida de una solicitud. UserName solo en la vista del manager.
type RequestResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName,omitempty"`
	Type        string    `json:"type"`
	Subject     string    `json:"subject"`
	Details     string    `json:"details"`
	Status      string    `json:"status"`
	IsAnonymous bool      `json:"isAnonymous"`
	ReviewedBy  *string   `json:"reviewedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ── Amonestaciones ───────────────────────────────────────────────────────────

// CreateWarningRequest amonestación a un usuario explícito. IssuedBy lo fija el servidor.
type CreateWarningRequest struct {
	UserID         string  `json:"userId" validate:"required,uuid"`
	Reason         string  `json:"reason" validate:"required,min=1,max=2000"`
	IsFiringNotice bool    `json:"isFiringNotice"`
	MarketWide     bool    `json:"marketWide"`
	MarketID       *string `json:"marketId" validate:"omitempty,uuid"`
}

// WarningResponse salida de una amonestación.
type WarningResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	IssuedBy       string    `json:"issuedBy"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	IsFiringNotice bool      `json:"isFiringNotice"`
	MarketWide     bool      `json:"marketWide"`
	MarketID       *string   `json:"marketId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ── Caja ─────────────────────────────────────────────────────────────────────

// CreateCashEntryRequest cuadre de caja. UserID se ignora.
type CreateCashEntryRequest struct {
	UserID    string          `json:"userId"`
	ShiftDate string          `json:"shiftDate" validate:"required,datetime=2006-01-02"`
	Status    string          `json:"status" validate:"required,oneof=shortage exact extra"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes" validate:"omitempty,max=2000"`
}

// CashEntryResponse salida de un cuadre.
type CashEntryResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	ShiftDate string          `json:"shiftDate"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ── Contratos ────────────────────────────────────────────────────────────────

// CreateContractRequest alta de contrato.
type CreateContractRequest struct {
	UserID    string `json:"userId" validate:"required,uuid"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	IsActive  *bool  `json:"isActive"`
}

// UpdateContractRequest campos editables de un contrato.
type UpdateContractRequest struct {
	StartDate        *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate          *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	IsActive         *bool   `json:"isActive"`
	NoticeDate       *string `json:"noticeDate" validate:"omitempty,datetime=2006-01-02"`
	RenewalRequested *bool   `json:"renewalRequested"`
}

// ContractResponse salida de un contrato.
type ContractResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	IsActive         bool      `json:"isActive"`
	NoticeDate       *string   `json:"noticeDate"`
	RenewalRequested bool      `json:"renewalRequested"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ── SOS ──────────────────────────────────────────────────────────────────────

// CreateSOSRequest alerta de emergencia. UserID se ignora.
type CreateSOSRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type" validate:"required,oneof=police security ambulance firefighters"`
}

// SOSResponse salida de una alerta.
type SOSResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}

// ── Notificaciones ───────────────────────────────────────────────────────────

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ── Salario ──────────────────────────────────────────────────────────────────

// CreatePaymentRequest pago contra el salario acumulado.
type CreatePaymentRequest struct {
	UserID string          `json:"userId" validate:"required,uuid"`
	Amount decimal.Decimal `json:"amount"`
	Period string          `json:"period" validate:"required,datetime=2006-01"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID     string          `json:"id"`
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
	Period string          `json:"period"`
	PaidAt time.Time       `json:"paidAt"`
}

// SalaryResponse resumen salarial de un usuario.
type SalaryResponse struct {
	UserID            string            `json:"userId"`
	Name              string            `json:"name"`
	HourlyRate        decimal.Decimal   `json:"hourlyRate"`
	HolidayRate       decimal.Decimal   `json:"holidayRate"`
	AccumulatedSalary decimal.Decimal   `json:"accumulatedSalary"`
	Payments          []PaymentResponse `json:"payments"`
}

// ── Paneles ──────────────────────────────────────────────────────────────────

// CompanyStatsResponse agregados de la empresa.
type CompanyStatsResponse struct {
	TotalUsers      int `json:"totalUsers"`
	Admins          int `json:"admins"`
	Managers        int `json:"managers"`
	Staff           int `json:"staff"`
	TotalMarkets    int `json:"totalMarkets"`
	PendingRequests int `json:"pendingRequests"`
	ActiveWarnings  int `json:"activeWarnings"`
}

// AdminDashboardResponse panel ejecutivo: agregados, markets y alertas abiertas.
type AdminDashboardResponse struct {
	Company   CompanyResponse      `json:"company"`
	Stats     CompanyStatsResponse `json:"stats"`
	Markets   []MarketResponse     `json:"markets"`
	OpenSOS   []SOSResponse        `json:"openSos"`
	Generated time.Time            `json:"generatedAt"`
}
