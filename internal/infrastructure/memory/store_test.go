package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var t0 = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, r *Repositories, id, companyID string, role rbac.Role, marketID *string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID: id, CompanyID: companyID, Email: id + "@x.com", Role: role, MarketID: marketID,
		AccumulatedSalary: decimal.Zero, CreatedAt: t0,
	}
	require.NoError(t, r.Users.Create(context.Background(), u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y login
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_EmailUnicoPorEmpresa(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	require.NoError(t, r.Users.Create(ctx, &entity.User{ID: "a", CompanyID: "c1", Email: "ana@x.com"}))

	err := r.Users.Create(ctx, &entity.User{ID: "b", CompanyID: "c1", Email: "ana@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Mismo email en otra empresa: permitido.
	assert.NoError(t, r.Users.Create(ctx, &entity.User{ID: "c", CompanyID: "c2", Email: "ana@x.com"}))
}

func TestUsers_GetByIDInCompany(t *testing.T) {
	r := NewRepositories(NewStore())
	seedUser(t, r, "u1", "c1", rbac.RoleStaff, nil)

	u, err := r.Users.GetByIDInCompany(context.Background(), "u1", "c2")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.Users.GetByIDInCompany(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

// Los incrementos concurrentes no se pierden.
func TestUsers_FallosConcurrentes(t *testing.T) {
	r := NewRepositories(NewStore())
	seedUser(t, r, "u1", "c1", rbac.RoleStaff, nil)
	lockout := policy.Lockout{MaxAttempts: 1000, Duration: time.Minute}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := r.Users.RegisterFailedLogin(context.Background(), "u1", lockout, t0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	u, err := r.Users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 50, u.FailedLoginAttempts)
}

func TestUsers_BloqueoYReset(t *testing.T) {
	r := NewRepositories(NewStore())
	seedUser(t, r, "u1", "c1", rbac.RoleStaff, nil)
	ctx := context.Background()
	lockout := policy.DefaultLockout()

	var until *time.Time
	for i := 1; i <= 5; i++ {
		n, u, err := r.Users.RegisterFailedLogin(ctx, "u1", lockout, t0)
		require.NoError(t, err)
		assert.Equal(t, i, n)
		until = u
	}
	require.NotNil(t, until)
	assert.Equal(t, t0.Add(15*time.Minute), *until)

	require.NoError(t, r.Users.ResetFailedLogins(ctx, "u1"))
	u, _ := r.Users.GetByID(ctx, "u1")
	assert.Zero(t, u.FailedLoginAttempts)
	assert.Nil(t, u.LockedUntil)
}

// Update no puede tocar hash, salario ni estado de login.
func TestUsers_UpdateConservaCamposProtegidos(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "u1", "c1", rbac.RoleStaff, nil)
	require.NoError(t, r.Users.UpdatePassword(ctx, "u1", "hash-nuevo", t0))

	u.Name = "Ana"
	u.PasswordHash = ""
	u.AccumulatedSalary = decimal.NewFromInt(999)
	require.NoError(t, r.Users.Update(ctx, u))

	got, _ := r.Users.GetByID(ctx, "u1")
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "hash-nuevo", got.PasswordHash)
	assert.True(t, got.AccumulatedSalary.IsZero())
}

func TestUsers_ListAplicaAlcance(t *testing.T) {
	r := NewRepositories(NewStore())
	m1 := strPtr("m1")
	seedUser(t, r, "a", "c1", rbac.RoleStaff, m1)
	seedUser(t, r, "b", "c1", rbac.RoleStaff, nil)
	seedUser(t, r, "c", "c1", rbac.RoleManager, m1)
	seedUser(t, r, "z", "c2", rbac.RoleStaff, m1)
	ctx := context.Background()

	list, err := r.Users.List(ctx, policy.Scope{Kind: policy.ScopeMarket, CompanyID: "c1", MarketID: "m1"}, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = r.Users.List(ctx, policy.Scope{Kind: policy.ScopeCompany, CompanyID: "c1"}, repository.UserFilter{Roles: []rbac.Role{rbac.RoleStaff}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = r.Users.List(ctx, policy.Scope{Kind: policy.ScopeSelf, CompanyID: "c1", UserID: "b"}, repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro transaccional
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ConfirmaTodoJunto(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()

	err := r.Tx.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, &entity.Company{ID: "c1", Code: "ACME"}); err != nil {
			return err
		}
		return users.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Email: "o@acme.com"})
	})
	require.NoError(t, err)

	c, _ := r.Companies.GetByCode(ctx, "ACME")
	assert.NotNil(t, c)
	u, _ := r.Users.GetByID(ctx, "u1")
	assert.NotNil(t, u)
}

func TestTxRunner_ErrorNoDejaRastro(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	boom := errors.New("fallo a mitad")

	err := r.Tx.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		_ = companies.Create(ctx, &entity.Company{ID: "c1", Code: "ACME"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, _ := r.Companies.GetByCode(ctx, "ACME")
	assert.Nil(t, c)
}

// Un conflicto al aplicar deshace también lo ya insertado.
func TestTxRunner_ConflictoDeshace(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()

	err := r.Tx.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		_ = companies.Create(ctx, &entity.Company{ID: "c1", Code: "ACME"})
		_ = users.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Email: "o@acme.com"})
		return users.Create(ctx, &entity.User{ID: "u2", CompanyID: "c1", Email: "o@acme.com"})
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	c, _ := r.Companies.GetByCode(ctx, "ACME")
	assert.Nil(t, c)
	u, _ := r.Users.GetByID(ctx, "u1")
	assert.Nil(t, u)
}

// ──────────────────────────────────────────────────────────────────────────────
// Markets y salario
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkets_DeleteDesasigna(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	require.NoError(t, r.Markets.Create(ctx, &entity.Market{ID: "m1", CompanyID: "c1", Name: "Centro"}))
	seedUser(t, r, "u1", "c1", rbac.RoleStaff, strPtr("m1"))
	require.NoError(t, r.Schedules.Create(ctx, &entity.Schedule{ID: "s1", UserID: "u1", MarketID: strPtr("m1"), Date: t0}))

	assert.ErrorIs(t, r.Markets.Delete(ctx, "m1", "c2"), domain.ErrNotFound, "otra empresa no lo ve")

	counts, err := r.Markets.ListWithCounts(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].UserCount)

	require.NoError(t, r.Markets.Delete(ctx, "m1", "c1"))
	u, _ := r.Users.GetByID(ctx, "u1")
	assert.Nil(t, u.MarketID)
	s, _ := r.Schedules.GetByID(ctx, "s1")
	assert.Nil(t, s.MarketID)
	m, _ := r.Markets.GetByID(ctx, "m1", "c1")
	assert.Nil(t, m)
}

func TestSalary_PagoDescuentaSaldoAunqueQuedeNegativo(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := &entity.User{ID: "u1", CompanyID: "c1", Email: "a@x.com", AccumulatedSalary: decimal.NewFromInt(100)}
	require.NoError(t, r.Users.Create(ctx, u))

	err := r.Salary.RecordPayment(ctx, &entity.SalaryPayment{ID: "p1", UserID: "u1", Amount: decimal.NewFromInt(60), PaidAt: t0})
	require.NoError(t, err)
	err = r.Salary.RecordPayment(ctx, &entity.SalaryPayment{ID: "p2", UserID: "u1", Amount: decimal.NewFromInt(60), PaidAt: t0})
	require.NoError(t, err)

	got, _ := r.Users.GetByID(ctx, "u1")
	assert.True(t, got.AccumulatedSalary.Equal(decimal.NewFromInt(-20)), got.AccumulatedSalary.String())
	payments, err := r.Salary.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	err = r.Salary.RecordPayment(ctx, &entity.SalaryPayment{ID: "p3", UserID: "nadie", Amount: decimal.NewFromInt(1), PaidAt: t0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Borrar un usuario arrastra sus filas dependientes.
func TestUsers_DeleteEnCascada(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	seedUser(t, r, "u1", "c1", rbac.RoleStaff, nil)
	require.NoError(t, r.Schedules.Create(ctx, &entity.Schedule{ID: "s1", UserID: "u1", Date: t0}))
	require.NoError(t, r.Requests.Create(ctx, &entity.Request{ID: "r1", UserID: "u1", Status: entity.RequestStatusPending, CreatedAt: t0}))

	assert.ErrorIs(t, r.Users.Delete(ctx, "u1", "c2"), domain.ErrNotFound)
	require.NoError(t, r.Users.Delete(ctx, "u1", "c1"))

	s, _ := r.Schedules.GetByID(ctx, "s1")
	assert.Nil(t, s)
	req, _ := r.Requests.GetByID(ctx, "r1")
	assert.Nil(t, req)
}

// Transition solo avanza desde el estado esperado.
func TestRequests_TransitionCompareAndSet(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	require.NoError(t, r.Requests.Create(ctx, &entity.Request{ID: "r1", UserID: "u1", Status: entity.RequestStatusPending, CreatedAt: t0}))

	got, err := r.Requests.Transition(ctx, "r1", entity.RequestStatusPending, entity.RequestStatusApproved, "rev", t0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.RequestStatusApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, "rev", *got.ReviewedBy)

	got, err = r.Requests.Transition(ctx, "r1", entity.RequestStatusPending, entity.RequestStatusDeclined, "rev", t0)
	require.NoError(t, err)
	assert.Nil(t, got)
}
