package rbac

import "fmt"

// Group nombre de un conjunto de roles usado por los guards de ruta.
type Group string

// Grupos de roles.
const (
	GroupExecutive      Group = "EXECUTIVE"
	GroupUserManagement Group = "USER_MANAGEMENT"
	GroupFinancial      Group = "FINANCIAL"
	GroupTeamManagement Group = "TEAM_MANAGEMENT"
	// GroupFieldManagers son los roles con alcance de market (manager, supervisor).
	GroupFieldManagers Group = "FIELD_MANAGERS"
	// GroupCompanyAdmins es la lista literal owner/admin usada en ajustes de empresa.
	GroupCompanyAdmins Group = "COMPANY_ADMINS"
	// GroupAuthenticated cualquier usuario autenticado.
	GroupAuthenticated Group = "AUTHENTICATED"
)

// RoleSet conjunto de roles.
type RoleSet map[Role]struct{}

// NewRoleSet construye un RoleSet con los roles dados.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has informa si r pertenece al conjunto.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Union devuelve un nuevo conjunto con los roles de ambos.
func (s RoleSet) Union(other RoleSet) RoleSet {
	out := make(RoleSet, len(s)+len(other))
	for r := range s {
		out[r] = struct{}{}
	}
	for r := range other {
		out[r] = struct{}{}
	}
	return out
}

// Roles devuelve los miembros en orden descendente de rango.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range AllRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Model es la única fuente de verdad de qué roles existen y qué contiene cada grupo.
type Model struct {
	name       string
	assignable RoleSet
	groups     map[Group]RoleSet
}

// Nombres de modelo aceptados por NewModel.
const (
	ModelHierarchy = "hierarchy"
	ModelSimple    = "simple"
)

// NewHierarchyModel modelo completo de siete niveles.
func NewHierarchyModel() *Model {
	return &Model{
		name:       ModelHierarchy,
		assignable: NewRoleSet(AllRoles...),
		groups: map[Group]RoleSet{
			GroupExecutive:      NewRoleSet(RoleOwner, RoleAdmin, RoleCFO, RoleHRAdmin),
			GroupUserManagement: NewRoleSet(RoleOwner, RoleAdmin, RoleHRAdmin),
			GroupFinancial:      NewRoleSet(RoleOwner, RoleAdmin, RoleCFO),
			GroupTeamManagement: NewRoleSet(RoleOwner, RoleAdmin, RoleHRAdmin, RoleManager, RoleSupervisor),
			GroupFieldManagers:  NewRoleSet(RoleManager, RoleSupervisor),
			GroupCompanyAdmins:  NewRoleSet(RoleOwner, RoleAdmin),
			GroupAuthenticated:  NewRoleSet(AllRoles...),
		},
	}
}

// NewSimpleModel modelo plano admin/manager/staff: todos los grupos ejecutivos colapsan en {admin}.
// El owner que crea la empresa se registra como admin en este modelo.
func NewSimpleModel() *Model {
	admin := NewRoleSet(RoleAdmin)
	return &Model{
		name:       ModelSimple,
		assignable: NewRoleSet(RoleAdmin, RoleManager, RoleStaff),
		groups: map[Group]RoleSet{
			GroupExecutive:      admin,
			GroupUserManagement: admin,
			GroupFinancial:      admin,
			GroupTeamManagement: NewRoleSet(RoleAdmin, RoleManager),
			GroupFieldManagers:  NewRoleSet(RoleManager),
			GroupCompanyAdmins:  admin,
			GroupAuthenticated:  NewRoleSet(RoleAdmin, RoleManager, RoleStaff),
		},
	}
}

// NewModel elige el modelo por nombre (config AUTH_ROLE_MODEL).
func NewModel(name string) (*Model, error) {
	switch name {
	case "", ModelHierarchy:
		return NewHierarchyModel(), nil
	case ModelSimple:
		return NewSimpleModel(), nil
	default:
		return nil, fmt.Errorf("rbac: modelo de roles desconocido %q", name)
	}
}

// Name nombre del modelo.
func (m *Model) Name() string { return m.name }

// Roles devuelve el conjunto de roles de un grupo; vacío si el grupo no existe.
func (m *Model) Roles(g Group) RoleSet {
	if s, ok := m.groups[g]; ok {
		return s
	}
	return RoleSet{}
}

// InGroup informa si el rol pertenece al grupo.
func (m *Model) InGroup(r Role, g Group) bool {
	return m.Roles(g).Has(r)
}

// Assignable informa si el rol puede asignarse a un usuario en este modelo.
func (m *Model) Assignable(r Role) bool {
	return m.assignable.Has(r)
}

// TopRole rol con el que se registra el creador de una empresa.
func (m *Model) TopRole() Role {
	if m.name == ModelSimple {
		return RoleAdmin
	}
	return RoleOwner
}
