package memory

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertUserLocked(u)
}

func (s *Store) insertUserLocked(u *entity.User) error {
	for _, x := range s.users {
		if x.CompanyID == u.CompanyID && x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	s.users = append(s.users, cloneUser(u))
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneUser(r.s.userLocked(id)), nil
}

func (r *UserRepository) GetByIDInCompany(_ context.Context, id, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(id)
	if u == nil || u.CompanyID != companyID {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(_ context.Context, scope policy.Scope, filter repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	roles := rbac.NewRoleSet(filter.Roles...)
	var out []*entity.User
	for _, u := range r.s.users {
		if !scope.Allows(policy.OwnerOf(u)) {
			continue
		}
		if len(roles) > 0 && !roles.Has(u.Role) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return newestFirst(out, func(u *entity.User) time.Time { return u.CreatedAt }), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.users {
		if x.ID == u.ID {
			for _, y := range r.s.users {
				if y.ID != u.ID && y.CompanyID == u.CompanyID && y.Email == u.Email {
					return domain.ErrEmailAlreadyExists
				}
			}
			// Hash, salario y estado de login no se tocan por esta vía.
			c := cloneUser(u)
			c.PasswordHash = x.PasswordHash
			c.AccumulatedSalary = x.AccumulatedSalary
			c.FailedLoginAttempts = x.FailedLoginAttempts
			c.LockedUntil = x.LockedUntil
			r.s.users[i] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, hash string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(id)
	if u == nil {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = now
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(id)
	if u == nil || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	s := r.s
	s.schedules = removeIf(s.schedules, func(x *entity.Schedule) bool { return x.UserID == id })
	s.requests = removeIf(s.requests, func(x *entity.Request) bool { return x.UserID == id })
	s.warnings = removeIf(s.warnings, func(x *entity.Warning) bool { return x.UserID == id })
	s.cash = removeIf(s.cash, func(x *entity.CashRegisterEntry) bool { return x.UserID == id })
	s.contracts = removeIf(s.contracts, func(x *entity.Contract) bool { return x.UserID == id })
	s.sos = removeIf(s.sos, func(x *entity.SOSAlert) bool { return x.UserID == id })
	s.payments = removeIf(s.payments, func(x *entity.SalaryPayment) bool { return x.UserID == id })
	s.notifications = removeIf(s.notifications, func(x *entity.Notification) bool { return x.UserID == id })
	s.users = removeIf(s.users, func(x *entity.User) bool { return x.ID == id })
	return nil
}

func (r *UserRepository) RegisterFailedLogin(_ context.Context, id string, lockout policy.Lockout, now time.Time) (int, *time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(id)
	if u == nil {
		return 0, nil, domain.ErrNotFound
	}
	u.FailedLoginAttempts, u.LockedUntil = lockout.NextFailure(u.FailedLoginAttempts, u.LockedUntil, now)
	return u.FailedLoginAttempts, clonePtr(u.LockedUntil), nil
}

func (r *UserRepository) ResetFailedLogins(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(id)
	if u == nil {
		return domain.ErrNotFound
	}
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	c.MarketID = clonePtr(u.MarketID)
	c.LockedUntil = clonePtr(u.LockedUntil)
	return &c
}
