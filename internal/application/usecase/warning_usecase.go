package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// WarningUseCase amonestaciones.
type WarningUseCase struct {
	scoper
	repo     repository.WarningRepository
	markets  repository.MarketRepository
	notifier notifier
	now      Clock
}

// NewWarningUseCase construye el caso de uso.
func NewWarningUseCase(
	repo repository.WarningRepository,
	users repository.UserRepository,
	markets repository.MarketRepository,
	notifications repository.NotificationRepository,
	pol *policy.Policy,
	now Clock,
) *WarningUseCase {
	now = orNow(now)
	return &WarningUseCase{
		scoper:   scoper{users: users, pol: pol},
		repo:     repo,
		markets:  markets,
		notifier: notifier{repo: notifications, now: now},
		now:      now,
	}
}

// List amonestaciones dentro del alcance.
func (uc *WarningUseCase) List(ctx context.Context, caller *entity.User) ([]dto.WarningResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarningResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.FromWarning(w))
	}
	return out, nil
}

// Create emite una amonestación a un usuario del alcance; IssuedBy es el llamador.
func (uc *WarningUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateWarningRequest) (*dto.WarningResponse, error) {
	a := policy.ActorFromUser(caller)
	target, err := uc.inScope(ctx, a, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkMarket(ctx, uc.markets, uc.pol, a, in.MarketID); err != nil {
		return nil, err
	}
	marketID := nilIfEmpty(in.MarketID)
	if marketID == nil {
		marketID = target.MarketID
	}
	now := uc.now()
	w := &entity.Warning{
		ID:             uuid.New().String(),
		UserID:         target.ID,
		IssuedBy:       caller.ID,
		Reason:         in.Reason,
		Status:         entity.WarningStatusActive,
		IsFiringNotice: in.IsFiringNotice,
		MarketWide:     in.MarketWide,
		MarketID:       marketID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	title := "New Warning"
	if w.IsFiringNotice {
		title = "Firing Notice"
	}
	uc.notifier.notify(ctx, title, w.Reason, entity.NotificationWarning, target.ID)
	out := dto.FromWarning(w)
	return &out, nil
}

// Resolve marca como resuelta una amonestación del alcance.
func (uc *WarningUseCase) Resolve(ctx context.Context, caller *entity.User, id string) (*dto.WarningResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.inScope(ctx, policy.ActorFromUser(caller), w.UserID); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Resolve(ctx, w.ID, uc.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromWarning(updated)
	return &out, nil
}
