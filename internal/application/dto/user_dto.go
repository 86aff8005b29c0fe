package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserResponse salida de un usuario. No existe campo de password: el hash nunca sale del dominio.
type UserResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"companyId"`
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	ProfilePicture    string          `json:"profilePicture"`
	Role              string          `json:"role"`
	Standing          string          `json:"standing"`
	MarketID          *string         `json:"marketId"`
	HourlyRate        decimal.Decimal `json:"hourlyRate"`
	HolidayRate       decimal.Decimal `json:"holidayRate"`
	AccumulatedSalary decimal.Decimal `json:"accumulatedSalary"`
	Theme             string          `json:"theme"`
	AccentColor       string          `json:"accentColor"`
	Language          string          `json:"language"`
	TwoFactorEnabled  bool            `json:"twoFactorEnabled"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// UpdateProfileRequest campos que un usuario puede cambiar de sí mismo.
// Cualquier otro campo en el cuerpo se rechaza.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone          *string `json:"phone" validate:"omitempty,max=40"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=2048"`
	Theme          *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	AccentColor    *string `json:"accentColor" validate:"omitempty,max=20"`
	Language       *string `json:"language" validate:"omitempty,min=2,max=10"`
}

// CreateUserRequest alta de usuario por un rol de gestión de usuarios.
type CreateUserRequest struct {
	Email       string           `json:"email" validate:"required,email"`
	Password    string           `json:"password" validate:"required,min=6,max=72"`
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Phone       string           `json:"phone" validate:"omitempty,max=40"`
	Role        string           `json:"role" validate:"required"`
	MarketID    *string          `json:"marketId" validate:"omitempty,uuid"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	HolidayRate *decimal.Decimal `json:"holidayRate"`
}

// UpdateUserRequest edición administrativa. MarketID vacío ("") desasigna el market.
type UpdateUserRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone" validate:"omitempty,max=40"`
	Role        *string          `json:"role"`
	Standing    *string          `json:"standing" validate:"omitempty,oneof=all_good good at_risk"`
	MarketID    *string          `json:"marketId" validate:"omitempty,uuid"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	HolidayRate *decimal.Decimal `json:"holidayRate"`
	Password    *string          `json:"password" validate:"omitempty,min=6,max=72"`
}

// UpdateStandingRequest cambio del indicador de bienestar de un empleado.
type UpdateStandingRequest struct {
	Standing string `json:"standing" validate:"required,oneof=all_good good at_risk"`
}

// TeamMemberResponse empleado con su turno de hoy (si tiene).
type TeamMemberResponse struct {
	UserResponse
	TodaySchedule *ScheduleResponse `json:"todaySchedule"`
}
