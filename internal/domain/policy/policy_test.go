package policy_test

import (
	"testing"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func newPolicy() *policy.Policy {
	return policy.New(rbac.NewHierarchyModel(), policy.Options{UnassignedManagersSeeCompany: true})
}

func actor(id string, role rbac.Role, market *string) policy.Actor {
	return policy.Actor{ID: id, CompanyID: "c1", Role: role, MarketID: market}
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAccessUser(t *testing.T) {
	p := newPolicy()

	assert.True(t, p.CanAccessUser(actor("u1", rbac.RoleHRAdmin, nil), "u2"))
	assert.True(t, p.CanAccessUser(actor("u1", rbac.RoleStaff, nil), "u1"))
	assert.False(t, p.CanAccessUser(actor("u1", rbac.RoleStaff, nil), "u2"))
	assert.False(t, p.CanAccessUser(actor("u1", rbac.RoleManager, strPtr("m1")), "u2"))
}

func TestCanAccessMarket(t *testing.T) {
	p := newPolicy()

	assert.True(t, p.CanAccessMarket(actor("u1", rbac.RoleCFO, nil), "m9"))
	assert.True(t, p.CanAccessMarket(actor("u1", rbac.RoleSupervisor, strPtr("m1")), "m1"))
	assert.False(t, p.CanAccessMarket(actor("u1", rbac.RoleSupervisor, strPtr("m1")), "m2"))
	assert.False(t, p.CanAccessMarket(actor("u1", rbac.RoleManager, nil), "m1"))
	assert.False(t, p.CanAccessMarket(actor("u1", rbac.RoleStaff, strPtr("m1")), "m1"))
}

func TestCheckAssignRole(t *testing.T) {
	p := newPolicy()

	assert.NoError(t, p.CheckAssignRole(actor("u1", rbac.RoleOwner, nil), rbac.RoleOwner))
	assert.NoError(t, p.CheckAssignRole(actor("u1", rbac.RoleHRAdmin, nil), rbac.RoleManager))
	assert.NoError(t, p.CheckAssignRole(actor("u1", rbac.RoleHRAdmin, nil), rbac.RoleCFO))
	assert.ErrorIs(t, p.CheckAssignRole(actor("u1", rbac.RoleAdmin, nil), rbac.RoleOwner), domain.ErrForbidden)
	assert.ErrorIs(t, p.CheckAssignRole(actor("u1", rbac.RoleHRAdmin, nil), rbac.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, p.CheckAssignRole(actor("u1", rbac.RoleOwner, nil), rbac.Role("root")), domain.ErrInvalidInput)

	simple := policy.New(rbac.NewSimpleModel(), policy.Options{})
	assert.ErrorIs(t, simple.CheckAssignRole(actor("u1", rbac.RoleAdmin, nil), rbac.RoleCFO), domain.ErrInvalidInput)
}

func TestCheckReviewRequest(t *testing.T) {
	p := newPolicy()
	mgr := actor("mgr", rbac.RoleManager, strPtr("m1"))

	assert.NoError(t, p.CheckReviewRequest(mgr, policy.Owner{UserID: "s1", CompanyID: "c1", MarketID: strPtr("m1")}))
	assert.ErrorIs(t, p.CheckReviewRequest(mgr, policy.Owner{UserID: "mgr", CompanyID: "c1", MarketID: strPtr("m1")}), domain.ErrSelfReview)
	assert.ErrorIs(t, p.CheckReviewRequest(mgr, policy.Owner{UserID: "s2", CompanyID: "c1", MarketID: strPtr("m2")}), domain.ErrNotFound)
	assert.ErrorIs(t, p.CheckReviewRequest(mgr, policy.Owner{UserID: "s3", CompanyID: "c2", MarketID: strPtr("m1")}), domain.ErrNotFound)
	assert.ErrorIs(t, p.CheckReviewRequest(actor("s1", rbac.RoleStaff, nil), policy.Owner{UserID: "s2", CompanyID: "c1"}), domain.ErrForbidden)

	owner := actor("own", rbac.RoleOwner, nil)
	assert.ErrorIs(t, p.CheckReviewRequest(owner, policy.Owner{UserID: "own", CompanyID: "c1"}), domain.ErrSelfReview)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance de listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListScope(t *testing.T) {
	p := newPolicy()

	cases := []struct {
		name  string
		actor policy.Actor
		want  policy.ScopeKind
	}{
		{"staff con market ve solo lo suyo", actor("s1", rbac.RoleStaff, strPtr("m1")), policy.ScopeSelf},
		{"manager con market", actor("m", rbac.RoleManager, strPtr("m1")), policy.ScopeMarket},
		{"supervisor con market", actor("m", rbac.RoleSupervisor, strPtr("m1")), policy.ScopeMarket},
		{"ejecutivo con market sigue viendo la empresa", actor("a", rbac.RoleAdmin, strPtr("m1")), policy.ScopeCompany},
		{"manager sin market", actor("m", rbac.RoleManager, nil), policy.ScopeCompany},
		{"rol desconocido", actor("x", rbac.Role("ghost"), nil), policy.ScopeSelf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := p.ListScope(tc.actor)
			assert.Equal(t, tc.want, s.Kind)
			assert.Equal(t, "c1", s.CompanyID)
		})
	}
}

func TestListScope_ManagerSinMarketRestringido(t *testing.T) {
	p := policy.New(rbac.NewHierarchyModel(), policy.Options{UnassignedManagersSeeCompany: false})
	s := p.ListScope(actor("m", rbac.RoleManager, nil))
	assert.Equal(t, policy.ScopeSelf, s.Kind)
	assert.Equal(t, "m", s.UserID)
}

func TestScopeAllows(t *testing.T) {
	market := policy.Scope{Kind: policy.ScopeMarket, CompanyID: "c1", MarketID: "m1"}
	assert.True(t, market.Allows(policy.Owner{UserID: "x", CompanyID: "c1", MarketID: strPtr("m1")}))
	assert.False(t, market.Allows(policy.Owner{UserID: "x", CompanyID: "c1", MarketID: strPtr("m2")}))
	assert.False(t, market.Allows(policy.Owner{UserID: "x", CompanyID: "c1"}))
	assert.False(t, market.Allows(policy.Owner{UserID: "x", CompanyID: "c2", MarketID: strPtr("m1")}))

	company := policy.Scope{Kind: policy.ScopeCompany, CompanyID: "c1"}
	assert.True(t, company.Allows(policy.Owner{UserID: "x", CompanyID: "c1"}))
	assert.False(t, company.Allows(policy.Owner{UserID: "x", CompanyID: "c2"}))

	self := policy.Scope{Kind: policy.ScopeSelf, CompanyID: "c1", UserID: "u1"}
	assert.True(t, self.Allows(policy.Owner{UserID: "u1", CompanyID: "c1"}))
	assert.False(t, self.Allows(policy.Owner{UserID: "u2", CompanyID: "c1"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo de cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestLockout_NextFailure(t *testing.T) {
	l := policy.DefaultLockout()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	attempts := 0
	var until *time.Time
	for i := 1; i <= 4; i++ {
		attempts, until = l.NextFailure(attempts, until, now)
		assert.Equal(t, i, attempts)
		assert.Nil(t, until)
	}
	attempts, until = l.NextFailure(attempts, until, now)
	assert.Equal(t, 5, attempts)
	if assert.NotNil(t, until) {
		assert.Equal(t, now.Add(15*time.Minute), *until)
		assert.True(t, l.IsLocked(until, now.Add(14*time.Minute)))
		assert.False(t, l.IsLocked(until, now.Add(15*time.Minute)))
	}

	// Bloqueo vencido: el siguiente fallo reinicia la cuenta.
	later := now.Add(16 * time.Minute)
	attempts, until = l.NextFailure(attempts, until, later)
	assert.Equal(t, 1, attempts)
	assert.Nil(t, until)
}
