package dto

// RegisterCompanyRequest alta de empresa junto con su primer usuario (owner).
type RegisterCompanyRequest struct {
	CompanyName    string `json:"companyName" validate:"required,min=1,max=200"`
	CompanyCode    string `json:"companyCode" validate:"required,min=4,max=32,alphanum"`
	CompanyAddress string `json:"companyAddress" validate:"omitempty,max=300"`
	OwnerName      string `json:"ownerName" validate:"required,min=1,max=200"`
	OwnerEmail     string `json:"ownerEmail" validate:"required,email"`
	OwnerPhone     string `json:"ownerPhone" validate:"omitempty,max=40"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
}

// RegisterRequest alta pública de un empleado en una empresa existente. Siempre crea staff.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Phone       string  `json:"phone" validate:"omitempty,max=40"`
	CompanyCode string  `json:"companyCode" validate:"required,min=4,max=32"`
	MarketID    *string `json:"marketId" validate:"omitempty,uuid"`
}

// LoginRequest email + password + código de empresa.
type LoginRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	CompanyCode string `json:"companyCode" validate:"required"`
}

// AuthResponse usuario (sin password) y token de sesión.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MeResponse envuelve al usuario autenticado: {"user": {...}}.
type MeResponse struct {
	User MeUser `json:"user"`
}

// MeUser usuario con su empresa y contrato vigente (null si no tiene).
type MeUser struct {
	UserResponse
	Company  *CompanyResponse  `json:"company"`
	Contract *ContractResponse `json:"contract"`
}

// ChangePasswordRequest cambio de contraseña propio.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// TwoFactorRequest activa o desactiva el indicador de doble factor.
type TwoFactorRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
