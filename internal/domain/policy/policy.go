// Package policy decide qué puede ver y modificar un usuario autenticado.
//
// Dos capas: guards de ruta (pertenencia a un grupo de roles, ver rbac.Model) y
// predicados de visibilidad por fila, funciones puras de
// (actor, dueño de la fila, market de la fila).
package policy

import (
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
)

// Actor es el usuario autenticado que hace la petición.
type Actor struct {
	ID        string
	CompanyID string
	Role      rbac.Role
	MarketID  *string
}

// ActorFromUser construye el Actor a partir del usuario cargado por el gate de autenticación.
func ActorFromUser(u *entity.User) Actor {
	return Actor{ID: u.ID, CompanyID: u.CompanyID, Role: u.Role, MarketID: u.MarketID}
}

// HasMarket informa si el actor tiene market asignado.
func (a Actor) HasMarket() bool {
	return a.MarketID != nil && *a.MarketID != ""
}

// Owner identifica al usuario dueño de una fila de negocio.
type Owner struct {
	UserID    string
	CompanyID string
	MarketID  *string
}

// OwnerOf construye el Owner a partir del usuario dueño.
func OwnerOf(u *entity.User) Owner {
	return Owner{UserID: u.ID, CompanyID: u.CompanyID, MarketID: u.MarketID}
}

// Options ajustes de política que dependen de producto.
type Options struct {
	// UnassignedManagersSeeCompany: manager/supervisor sin market ven toda la empresa (true)
	// o solo sus propias filas (false).
	UnassignedManagersSeeCompany bool
}

// Policy aplica el modelo de roles a decisiones concretas.
type Policy struct {
	model *rbac.Model
	opts  Options
}

// New construye la política sobre un modelo de roles.
func New(model *rbac.Model, opts Options) *Policy {
	return &Policy{model: model, opts: opts}
}

// Model devuelve el modelo de roles subyacente.
func (p *Policy) Model() *rbac.Model { return p.model }

// InGroup informa si el actor pertenece al grupo.
func (p *Policy) InGroup(a Actor, g rbac.Group) bool {
	return p.model.InGroup(a.Role, g)
}

// CanAccessUser: ejecutivos ven a cualquiera de su empresa; el resto solo a sí mismo.
// La pertenencia a la empresa la garantiza el repositorio al cargar el objetivo.
func (p *Policy) CanAccessUser(a Actor, targetUserID string) bool {
	if p.InGroup(a, rbac.GroupExecutive) {
		return true
	}
	return a.ID == targetUserID
}

// CanAccessMarket: ejecutivos ven cualquier market; manager/supervisor solo el suyo.
func (p *Policy) CanAccessMarket(a Actor, marketID string) bool {
	if p.InGroup(a, rbac.GroupExecutive) {
		return true
	}
	if p.InGroup(a, rbac.GroupFieldManagers) && a.HasMarket() {
		return *a.MarketID == marketID
	}
	return false
}

// CanManageTarget: el actor solo actúa sobre usuarios de rango menor o igual al suyo.
func (p *Policy) CanManageTarget(a Actor, targetRole rbac.Role) bool {
	return rbac.HasHigherOrEqualRole(a.Role, targetRole)
}

// CheckAssignRole valida que el actor pueda otorgar el rol: debe existir en el modelo,
// no superar el rango del actor, y owner solo lo otorga otro owner.
func (p *Policy) CheckAssignRole(a Actor, role rbac.Role) error {
	if !role.Valid() || !p.model.Assignable(role) {
		return domain.ErrInvalidInput
	}
	if !rbac.HasHigherOrEqualRole(a.Role, role) {
		return domain.ErrForbidden
	}
	if role == rbac.RoleOwner && a.Role != rbac.RoleOwner {
		return domain.ErrForbidden
	}
	return nil
}

// CheckReviewRequest: requiere TEAM_MANAGEMENT, la solicitud debe ser visible para el actor
// y nunca puede ser suya.
func (p *Policy) CheckReviewRequest(a Actor, owner Owner) error {
	if !p.InGroup(a, rbac.GroupTeamManagement) {
		return domain.ErrForbidden
	}
	if !p.ListScope(a).Allows(owner) {
		return domain.ErrNotFound
	}
	if owner.UserID == a.ID {
		return domain.ErrSelfReview
	}
	return nil
}
