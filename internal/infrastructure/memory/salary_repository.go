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

var (
	_ repository.SalaryRepository       = (*SalaryRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
	_ repository.StatsRepository        = (*StatsRepository)(nil)
)

type SalaryRepository struct{ s *Store }

// RecordPayment inserta el pago y descuenta el saldo bajo el mismo lock.
func (r *SalaryRepository) RecordPayment(_ context.Context, p *entity.SalaryPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userLocked(p.UserID)
	if u == nil {
		return domain.ErrNotFound
	}
	u.AccumulatedSalary = u.AccumulatedSalary.Sub(p.Amount)
	r.s.payments = append(r.s.payments, clonePtr(p))
	return nil
}

func (r *SalaryRepository) ListByUser(_ context.Context, userID string) ([]*entity.SalaryPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalaryPayment
	for _, p := range r.s.payments {
		if p.UserID == userID {
			out = append(out, clonePtr(p))
		}
	}
	return newestFirst(out, func(p *entity.SalaryPayment) time.Time { return p.PaidAt }), nil
}

type NotificationRepository struct{ s *Store }

func (r *NotificationRepository) Create(_ context.Context, list ...*entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range list {
		r.s.notifications = append(r.s.notifications, clonePtr(n))
	}
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, clonePtr(n))
		}
	}
	return newestFirst(out, func(n *entity.Notification) time.Time { return n.CreatedAt }), nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID string) (*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return clonePtr(n), nil
		}
	}
	return nil, nil
}

type StatsRepository struct{ s *Store }

func (r *StatsRepository) CompanyStats(_ context.Context, companyID string) (*entity.CompanyStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &entity.CompanyStats{}
	for _, u := range r.s.users {
		if u.CompanyID != companyID {
			continue
		}
		st.TotalUsers++
		switch u.Role {
		case rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleCFO, rbac.RoleHRAdmin:
			st.Admins++
		case rbac.RoleManager, rbac.RoleSupervisor:
			st.Managers++
		case rbac.RoleStaff:
			st.Staff++
		}
	}
	for _, m := range r.s.markets {
		if m.CompanyID == companyID {
			st.TotalMarkets++
		}
	}
	company := policy.Scope{Kind: policy.ScopeCompany, CompanyID: companyID}
	for _, x := range r.s.requests {
		if x.Status == entity.RequestStatusPending && r.s.allowsLocked(company, x.UserID) {
			st.PendingRequests++
		}
	}
	for _, x := range r.s.warnings {
		if x.Status == entity.WarningStatusActive && r.s.allowsLocked(company, x.UserID) {
			st.ActiveWarnings++
		}
	}
	return st, nil
}
