package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrSessionExpired     = errors.New("sesión expirada o inexistente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrLocked             = errors.New("cuenta bloqueada temporalmente")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado en la empresa")
	ErrCompanyCodeExists  = errors.New("el código de empresa ya existe")
	ErrSelfReview         = errors.New("no se puede revisar una solicitud propia")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidCompanyCode = errors.New("código de empresa inválido")
	ErrWrongPassword      = errors.New("la contraseña actual no coincide")
)
