package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// ContractUseCase contratos laborales.
type ContractUseCase struct {
	scoper
	repo     repository.ContractRepository
	notifier notifier
	now      Clock
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository, users repository.UserRepository, notifications repository.NotificationRepository, pol *policy.Policy, now Clock) *ContractUseCase {
	now = orNow(now)
	return &ContractUseCase{
		scoper:   scoper{users: users, pol: pol},
		repo:     repo,
		notifier: notifier{repo: notifications, now: now},
		now:      now,
	}
}

// List contratos dentro del alcance.
func (uc *ContractUseCase) List(ctx context.Context, caller *entity.User) ([]dto.ContractResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromContract(c))
	}
	return out, nil
}

// Current contrato activo del llamador; domain.ErrNotFound si no tiene.
func (uc *ContractUseCase) Current(ctx context.Context, caller *entity.User) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetActiveByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromContract(c)
	return &out, nil
}

// Create da de alta un contrato para un usuario de la empresa. Si nace activo, desactiva el anterior.
func (uc *ContractUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	a := policy.ActorFromUser(caller)
	target, err := uc.inCompany(ctx, a, in.UserID)
	if err != nil {
		return nil, err
	}
	if !uc.pol.CanManageTarget(a, target.Role) {
		return nil, domain.ErrForbidden
	}
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	active := in.IsActive == nil || *in.IsActive
	now := uc.now()
	c := &entity.Contract{
		ID:        uuid.New().String(),
		UserID:    target.ID,
		StartDate: start,
		EndDate:   end,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if active {
		if err := uc.repo.DeactivateOthers(ctx, target.ID, c.ID, now); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromContract(c)
	return &out, nil
}

// Update aplica la lista de campos editables de un contrato. Activarlo desactiva los demás
// contratos del usuario; el aviso de preaviso sale solo después de guardar.
func (uc *ContractUseCase) Update(ctx context.Context, caller *entity.User, id string, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	a := policy.ActorFromUser(caller)
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	target, err := uc.inCompany(ctx, a, c.UserID)
	if err != nil {
		return nil, err
	}
	if !uc.pol.CanManageTarget(a, target.Role) {
		return nil, domain.ErrForbidden
	}
	if in.StartDate != nil {
		if c.StartDate, err = dto.ParseDate(*in.StartDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.EndDate != nil {
		if c.EndDate, err = dto.ParseDate(*in.EndDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if !c.EndDate.After(c.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.NoticeDate != nil {
		d, err := dto.ParseDate(*in.NoticeDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		c.NoticeDate = &d
	}
	activating := in.IsActive != nil && *in.IsActive && !c.IsActive
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.RenewalRequested != nil {
		c.RenewalRequested = *in.RenewalRequested
	}
	c.UpdatedAt = uc.now()
	if activating {
		if err := uc.repo.DeactivateOthers(ctx, c.UserID, c.ID, c.UpdatedAt); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if in.NoticeDate != nil {
		uc.notifier.notify(ctx, "Contract Notice", "A notice date was set on your contract", entity.NotificationContract, c.UserID)
	}
	out := dto.FromContract(c)
	return &out, nil
}

// RequestRenewal el dueño del contrato pide su renovación.
func (uc *ContractUseCase) RequestRenewal(ctx context.Context, caller *entity.User, id string) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != caller.ID {
		return nil, domain.ErrNotFound
	}
	c.RenewalRequested = true
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromContract(c)
	return &out, nil
}

func parseRange(startS, endS string) (time.Time, time.Time, error) {
	start, err := dto.ParseDate(startS)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	end, err := dto.ParseDate(endS)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return start, end, nil
}
