package policy

import "github.com/jhoicas/staffhub-api/internal/domain/rbac"

// ScopeKind nivel de la regla de listado.
type ScopeKind int

// Niveles de alcance, del más estrecho al más amplio.
const (
	ScopeSelf ScopeKind = iota
	ScopeMarket
	ScopeCompany
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeSelf:
		return "self"
	case ScopeMarket:
		return "market"
	default:
		return "company"
	}
}

// Scope filtro que los repositorios aplican a cualquier listado.
// CompanyID siempre está presente: ninguna consulta sale de su tenant.
type Scope struct {
	Kind      ScopeKind
	CompanyID string
	UserID    string // ScopeSelf
	MarketID  string // ScopeMarket
}

// ListScope aplica la regla de tres niveles:
//  1. staff → solo sus filas.
//  2. manager/supervisor con market → filas cuyo dueño está en ese market.
//  3. el resto (ejecutivos, managers sin market) → filas de su empresa.
func (p *Policy) ListScope(a Actor) Scope {
	s := Scope{CompanyID: a.CompanyID}
	switch {
	case a.Role == rbac.RoleStaff:
		s.Kind = ScopeSelf
		s.UserID = a.ID
	case p.InGroup(a, rbac.GroupFieldManagers) && a.HasMarket():
		s.Kind = ScopeMarket
		s.MarketID = *a.MarketID
	case p.InGroup(a, rbac.GroupExecutive):
		s.Kind = ScopeCompany
	case p.InGroup(a, rbac.GroupFieldManagers) && p.opts.UnassignedManagersSeeCompany:
		s.Kind = ScopeCompany
	default:
		// Roles fuera de cualquier grupo de gestión: solo lo propio.
		s.Kind = ScopeSelf
		s.UserID = a.ID
	}
	return s
}

// SelfScope alcance restringido a las filas del propio actor.
func SelfScope(a Actor) Scope {
	return Scope{Kind: ScopeSelf, CompanyID: a.CompanyID, UserID: a.ID}
}

// Allows informa si una fila del dueño indicado cae dentro del alcance.
func (s Scope) Allows(o Owner) bool {
	if o.CompanyID != s.CompanyID {
		return false
	}
	switch s.Kind {
	case ScopeSelf:
		return o.UserID == s.UserID
	case ScopeMarket:
		return o.MarketID != nil && *o.MarketID == s.MarketID
	default:
		return true
	}
}
