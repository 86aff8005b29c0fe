package entity

import (
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/shopspring/decimal"
)

// Valores de Standing (indicador de bienestar, sin efecto en seguridad).
const (
	StandingAllGood = "all_good"
	StandingGood    = "good"
	StandingAtRisk  = "at_risk"
)

// ValidStanding informa si s es un standing conocido.
func ValidStanding(s string) bool {
	return s == StandingAllGood || s == StandingGood || s == StandingAtRisk
}

// User representa un empleado de una Company. El email es único por (email, company).
type User struct {
	ID                  string
	CompanyID           string
	Email               string
	PasswordHash        string `json:"-"` // nunca se serializa
	Name                string
	Phone               string
	ProfilePicture      string
	Role                rbac.Role
	Standing            string
	MarketID            *string
	HourlyRate          decimal.Decimal
	HolidayRate         decimal.Decimal
	AccumulatedSalary   decimal.Decimal
	Theme               string
	AccentColor         string
	Language            string
	TwoFactorEnabled    bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// InMarket informa si el usuario está asignado al market indicado.
func (u *User) InMarket(marketID string) bool {
	return u.MarketID != nil && *u.MarketID == marketID
}
