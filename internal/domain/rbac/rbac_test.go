package rbac_test

import (
	"testing"

	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Jerarquía
// ──────────────────────────────────────────────────────────────────────────────

func TestHasHigherOrEqualRole_Reflexivo(t *testing.T) {
	for _, r := range rbac.AllRoles {
		assert.True(t, rbac.HasHigherOrEqualRole(r, r), "rol %s", r)
	}
}

func TestHasHigherOrEqualRole_Transitivo(t *testing.T) {
	for _, a := range rbac.AllRoles {
		for _, b := range rbac.AllRoles {
			for _, c := range rbac.AllRoles {
				if rbac.HasHigherOrEqualRole(a, b) && rbac.HasHigherOrEqualRole(b, c) {
					assert.True(t, rbac.HasHigherOrEqualRole(a, c), "%s >= %s >= %s", a, b, c)
				}
			}
		}
	}
}

func TestHasHigherOrEqualRole_OrdenEsperado(t *testing.T) {
	assert.True(t, rbac.HasHigherOrEqualRole(rbac.RoleOwner, rbac.RoleAdmin))
	assert.True(t, rbac.HasHigherOrEqualRole(rbac.RoleAdmin, rbac.RoleCFO))
	assert.True(t, rbac.HasHigherOrEqualRole(rbac.RoleCFO, rbac.RoleHRAdmin))
	assert.True(t, rbac.HasHigherOrEqualRole(rbac.RoleHRAdmin, rbac.RoleCFO))
	assert.True(t, rbac.HasHigherOrEqualRole(rbac.RoleManager, rbac.RoleSupervisor))
	assert.False(t, rbac.HasHigherOrEqualRole(rbac.RoleStaff, rbac.RoleSupervisor))
	assert.False(t, rbac.HasHigherOrEqualRole(rbac.RoleManager, rbac.RoleCFO))
}

func TestRank_RolDesconocido(t *testing.T) {
	assert.Equal(t, 0, rbac.Rank(rbac.Role("superuser")))
	assert.False(t, rbac.HasHigherOrEqualRole(rbac.Role("superuser"), rbac.RoleStaff))

	_, ok := rbac.Parse("root")
	assert.False(t, ok)
	r, ok := rbac.Parse("hr_admin")
	assert.True(t, ok)
	assert.Equal(t, rbac.RoleHRAdmin, r)
}

// ──────────────────────────────────────────────────────────────────────────────
// Grupos
// ──────────────────────────────────────────────────────────────────────────────

func TestHierarchyModel_Grupos(t *testing.T) {
	m := rbac.NewHierarchyModel()

	cases := []struct {
		group rbac.Group
		want  []rbac.Role
	}{
		{rbac.GroupExecutive, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleCFO, rbac.RoleHRAdmin}},
		{rbac.GroupUserManagement, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleHRAdmin}},
		{rbac.GroupFinancial, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleCFO}},
		{rbac.GroupTeamManagement, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleHRAdmin, rbac.RoleManager, rbac.RoleSupervisor}},
		{rbac.GroupFieldManagers, []rbac.Role{rbac.RoleManager, rbac.RoleSupervisor}},
		{rbac.GroupCompanyAdmins, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin}},
		{rbac.GroupAuthenticated, rbac.AllRoles},
	}
	for _, tc := range cases {
		t.Run(string(tc.group), func(t *testing.T) {
			assert.Equal(t, tc.want, m.Roles(tc.group).Roles())
		})
	}
}

func TestHierarchyModel_StaffSoloAutenticado(t *testing.T) {
	m := rbac.NewHierarchyModel()
	for _, g := range []rbac.Group{rbac.GroupExecutive, rbac.GroupUserManagement, rbac.GroupFinancial, rbac.GroupTeamManagement, rbac.GroupFieldManagers, rbac.GroupCompanyAdmins} {
		assert.False(t, m.InGroup(rbac.RoleStaff, g), "staff no debe estar en %s", g)
	}
	assert.True(t, m.InGroup(rbac.RoleStaff, rbac.GroupAuthenticated))
}

func TestSimpleModel_ColapsaGrupos(t *testing.T) {
	m := rbac.NewSimpleModel()

	assert.Equal(t, []rbac.Role{rbac.RoleAdmin}, m.Roles(rbac.GroupExecutive).Roles())
	assert.Equal(t, []rbac.Role{rbac.RoleAdmin}, m.Roles(rbac.GroupFinancial).Roles())
	assert.Equal(t, []rbac.Role{rbac.RoleAdmin, rbac.RoleManager}, m.Roles(rbac.GroupTeamManagement).Roles())
	assert.Equal(t, []rbac.Role{rbac.RoleManager}, m.Roles(rbac.GroupFieldManagers).Roles())
	assert.False(t, m.Assignable(rbac.RoleOwner))
	assert.False(t, m.Assignable(rbac.RoleCFO))
	assert.True(t, m.Assignable(rbac.RoleStaff))
	assert.Equal(t, rbac.RoleAdmin, m.TopRole())
}

func TestNewModel(t *testing.T) {
	m, err := rbac.NewModel("")
	require.NoError(t, err)
	assert.Equal(t, rbac.ModelHierarchy, m.Name())
	assert.Equal(t, rbac.RoleOwner, m.TopRole())

	m, err = rbac.NewModel("simple")
	require.NoError(t, err)
	assert.Equal(t, rbac.ModelSimple, m.Name())

	_, err = rbac.NewModel("flat")
	assert.Error(t, err)
}

func TestRoleSet_Union(t *testing.T) {
	m := rbac.NewHierarchyModel()
	u := m.Roles(rbac.GroupFinancial).Union(rbac.NewRoleSet(rbac.RoleManager, rbac.RoleSupervisor))
	assert.Equal(t, []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleCFO, rbac.RoleManager, rbac.RoleSupervisor}, u.Roles())
}
