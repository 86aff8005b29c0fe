package memory

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var (
	_ repository.ScheduleRepository     = (*ScheduleRepository)(nil)
	_ repository.RequestRepository      = (*RequestRepository)(nil)
	_ repository.WarningRepository      = (*WarningRepository)(nil)
	_ repository.CashRegisterRepository = (*CashRegisterRepository)(nil)
	_ repository.ContractRepository     = (*ContractRepository)(nil)
	_ repository.SOSRepository          = (*SOSRepository)(nil)
)

// ── Turnos ───────────────────────────────────────────────────────────────────

type ScheduleRepository struct{ s *Store }

func (r *ScheduleRepository) Create(_ context.Context, x *entity.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedules = append(r.s.schedules, cloneSchedule(x))
	return nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.schedules {
		if x.ID == id {
			return cloneSchedule(x), nil
		}
	}
	return nil, nil
}

func (r *ScheduleRepository) List(_ context.Context, scope policy.Scope) ([]*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Schedule
	for _, x := range r.s.schedules {
		if r.s.allowsLocked(scope, x.UserID) {
			out = append(out, cloneSchedule(x))
		}
	}
	return newestFirst(out, func(x *entity.Schedule) time.Time { return x.Date }), nil
}

func (r *ScheduleRepository) ListForDay(_ context.Context, companyID string, day time.Time) ([]*entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	y, m, d := day.UTC().Date()
	var out []*entity.Schedule
	for _, x := range r.s.schedules {
		u := r.s.userLocked(x.UserID)
		if u == nil || u.CompanyID != companyID {
			continue
		}
		xy, xm, xd := x.Date.UTC().Date()
		if xy == y && xm == m && xd == d {
			out = append(out, cloneSchedule(x))
		}
	}
	return out, nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedules = removeIf(r.s.schedules, func(x *entity.Schedule) bool { return x.ID == id })
	return nil
}

func cloneSchedule(x *entity.Schedule) *entity.Schedule {
	c := *x
	c.MarketID = clonePtr(x.MarketID)
	return &c
}

// ── Solicitudes ──────────────────────────────────────────────────────────────

type RequestRepository struct{ s *Store }

func (r *RequestRepository) Create(_ context.Context, x *entity.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests = append(r.s.requests, cloneRequest(x))
	return nil
}

func (r *RequestRepository) GetByID(_ context.Context, id string) (*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.requests {
		if x.ID == id {
			return cloneRequest(x), nil
		}
	}
	return nil, nil
}

func (r *RequestRepository) List(_ context.Context, scope policy.Scope, filter repository.RequestFilter) ([]*entity.RequestWithOwner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.RequestWithOwner
	for _, x := range r.s.requests {
		if !r.s.allowsLocked(scope, x.UserID) {
			continue
		}
		if filter.Status != "" && x.Status != filter.Status {
			continue
		}
		if filter.ExcludeUserID != "" && x.UserID == filter.ExcludeUserID {
			continue
		}
		out = append(out, &entity.RequestWithOwner{Request: *cloneRequest(x), UserName: r.s.userLocked(x.UserID).Name})
	}
	return newestFirst(out, func(x *entity.RequestWithOwner) time.Time { return x.CreatedAt }), nil
}

func (r *RequestRepository) Transition(_ context.Context, id, from, to, reviewerID string, now time.Time) (*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.requests {
		if x.ID == id {
			if x.Status != from {
				return nil, nil
			}
			x.Status = to
			x.ReviewedBy = &reviewerID
			x.UpdatedAt = now
			return cloneRequest(x), nil
		}
	}
	return nil, nil
}

func (r *RequestRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests = removeIf(r.s.requests, func(x *entity.Request) bool { return x.ID == id })
	return nil
}

func cloneRequest(x *entity.Request) *entity.Request {
	c := *x
	c.ReviewedBy = clonePtr(x.ReviewedBy)
	return &c
}

// ── Amonestaciones ───────────────────────────────────────────────────────────

type WarningRepository struct{ s *Store }

func (r *WarningRepository) Create(_ context.Context, x *entity.Warning) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warnings = append(r.s.warnings, cloneWarning(x))
	return nil
}

func (r *WarningRepository) GetByID(_ context.Context, id string) (*entity.Warning, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.warnings {
		if x.ID == id {
			return cloneWarning(x), nil
		}
	}
	return nil, nil
}

func (r *WarningRepository) List(_ context.Context, scope policy.Scope) ([]*entity.Warning, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warning
	for _, x := range r.s.warnings {
		if r.s.allowsLocked(scope, x.UserID) {
			out = append(out, cloneWarning(x))
		}
	}
	return newestFirst(out, func(x *entity.Warning) time.Time { return x.CreatedAt }), nil
}

func (r *WarningRepository) Resolve(_ context.Context, id string, now time.Time) (*entity.Warning, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.warnings {
		if x.ID == id {
			x.Status = entity.WarningStatusResolved
			x.UpdatedAt = now
			return cloneWarning(x), nil
		}
	}
	return nil, nil
}

func cloneWarning(x *entity.Warning) *entity.Warning {
	c := *x
	c.MarketID = clonePtr(x.MarketID)
	return &c
}

// ── Caja ─────────────────────────────────────────────────────────────────────

type CashRegisterRepository struct{ s *Store }

func (r *CashRegisterRepository) Create(_ context.Context, x *entity.CashRegisterEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cash = append(r.s.cash, clonePtr(x))
	return nil
}

func (r *CashRegisterRepository) List(_ context.Context, scope policy.Scope) ([]*entity.CashRegisterEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CashRegisterEntry
	for _, x := range r.s.cash {
		if r.s.allowsLocked(scope, x.UserID) {
			out = append(out, clonePtr(x))
		}
	}
	return newestFirst(out, func(x *entity.CashRegisterEntry) time.Time { return x.ShiftDate }), nil
}

// ── Contratos ────────────────────────────────────────────────────────────────

type ContractRepository struct{ s *Store }

func (r *ContractRepository) Create(_ context.Context, x *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contracts = append(r.s.contracts, cloneContract(x))
	return nil
}

func (r *ContractRepository) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.contracts {
		if x.ID == id {
			return cloneContract(x), nil
		}
	}
	return nil, nil
}

func (r *ContractRepository) GetActiveByUser(_ context.Context, userID string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.Contract
	for _, x := range r.s.contracts {
		if x.UserID == userID && x.IsActive {
			if found == nil || x.StartDate.After(found.StartDate) {
				found = x
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	return cloneContract(found), nil
}

func (r *ContractRepository) List(_ context.Context, scope policy.Scope) ([]*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for _, x := range r.s.contracts {
		if r.s.allowsLocked(scope, x.UserID) {
			out = append(out, cloneContract(x))
		}
	}
	return newestFirst(out, func(x *entity.Contract) time.Time { return x.CreatedAt }), nil
}

func (r *ContractRepository) Update(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.contracts {
		if x.ID == c.ID {
			r.s.contracts[i] = cloneContract(c)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ContractRepository) DeactivateOthers(_ context.Context, userID, keepID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.contracts {
		if x.UserID == userID && x.ID != keepID && x.IsActive {
			x.IsActive = false
			x.UpdatedAt = at
		}
	}
	return nil
}

func cloneContract(x *entity.Contract) *entity.Contract {
	c := *x
	c.NoticeDate = clonePtr(x.NoticeDate)
	return &c
}

// ── SOS ──────────────────────────────────────────────────────────────────────

type SOSRepository struct{ s *Store }

func (r *SOSRepository) Create(_ context.Context, x *entity.SOSAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sos = append(r.s.sos, clonePtr(x))
	return nil
}

func (r *SOSRepository) GetByID(_ context.Context, id string) (*entity.SOSAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.sos {
		if x.ID == id {
			return clonePtr(x), nil
		}
	}
	return nil, nil
}

func (r *SOSRepository) List(_ context.Context, scope policy.Scope) ([]*entity.SOSAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SOSAlert
	for _, x := range r.s.sos {
		if r.s.allowsLocked(scope, x.UserID) {
			out = append(out, clonePtr(x))
		}
	}
	return newestFirst(out, func(x *entity.SOSAlert) time.Time { return x.CreatedAt }), nil
}

func (r *SOSRepository) ListUnresolved(ctx context.Context, companyID string, limit int) ([]*entity.SOSAlert, error) {
	all, err := r.List(ctx, policy.Scope{Kind: policy.ScopeCompany, CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	var out []*entity.SOSAlert
	for _, x := range all {
		if !x.Resolved {
			out = append(out, x)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *SOSRepository) Resolve(_ context.Context, id string) (*entity.SOSAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.sos {
		if x.ID == id {
			x.Resolved = true
			return clonePtr(x), nil
		}
	}
	return nil, nil
}
