// Package rbac contiene el modelo de roles: jerarquía ordenada y grupos nombrados.
//
// Orden total por rango: owner > admin > {cfo, hr_admin} > manager > supervisor > staff.
// cfo y hr_admin comparten rango y no son comparables entre sí.
package rbac

// Role rol de un usuario dentro de su empresa.
type Role string

// Roles del modelo jerárquico.
const (
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleCFO        Role = "cfo"
	RoleHRAdmin    Role = "hr_admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleStaff      Role = "staff"
)

var ranks = map[Role]int{
	RoleOwner:      7,
	RoleAdmin:      6,
	RoleCFO:        5,
	RoleHRAdmin:    5,
	RoleManager:    4,
	RoleSupervisor: 3,
	RoleStaff:      1,
}

// AllRoles en orden descendente de rango.
var AllRoles = []Role{RoleOwner, RoleAdmin, RoleCFO, RoleHRAdmin, RoleManager, RoleSupervisor, RoleStaff}

// Rank devuelve el rango del rol; 0 para roles desconocidos.
func Rank(r Role) int {
	return ranks[r]
}

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	_, ok := ranks[r]
	return ok
}

func (r Role) String() string { return string(r) }

// HasHigherOrEqualRole informa si a tiene rango mayor o igual que b.
// Un rol desconocido tiene rango 0, así que nunca supera a uno conocido.
func HasHigherOrEqualRole(a, b Role) bool {
	return Rank(a) >= Rank(b)
}

// Parse convierte un string a Role; ok=false si no es un rol conocido.
func Parse(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
