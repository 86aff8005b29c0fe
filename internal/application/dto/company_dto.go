package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Code               string          `json:"code"`
	Address            string          `json:"address"`
	DefaultHourlyRate  decimal.Decimal `json:"defaultHourlyRate"`
	DefaultHolidayRate decimal.Decimal `json:"defaultHolidayRate"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// UpdateCompanyRequest campos editables de la empresa. El código no cambia.
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// SettingsResponse ajustes de tarifas por defecto de la empresa.
type SettingsResponse struct {
	DefaultHourlyRate  decimal.Decimal `json:"defaultHourlyRate"`
	DefaultHolidayRate decimal.Decimal `json:"defaultHolidayRate"`
}

// UpdateSettingsRequest nuevas tarifas por defecto.
type UpdateSettingsRequest struct {
	DefaultHourlyRate  *decimal.Decimal `json:"defaultHourlyRate"`
	DefaultHolidayRate *decimal.Decimal `json:"defaultHolidayRate"`
}

// MarketRequest alta/edición de market.
type MarketRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// MarketResponse salida de un market. UserCount solo en la vista ejecutiva.
type MarketResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	UserCount *int      `json:"userCount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
