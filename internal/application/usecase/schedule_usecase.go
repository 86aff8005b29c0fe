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

// ScheduleUseCase turnos.
type ScheduleUseCase struct {
	scoper
	repo    repository.ScheduleRepository
	markets repository.MarketRepository
	now     Clock
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(repo repository.ScheduleRepository, users repository.UserRepository, markets repository.MarketRepository, pol *policy.Policy, now Clock) *ScheduleUseCase {
	return &ScheduleUseCase{scoper: scoper{users: users, pol: pol}, repo: repo, markets: markets, now: orNow(now)}
}

// List turnos dentro del alcance del llamador.
func (uc *ScheduleUseCase) List(ctx context.Context, caller *entity.User) ([]dto.ScheduleResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSchedule(s))
	}
	return out, nil
}

// Create asigna un turno a un usuario del alcance del llamador.
func (uc *ScheduleUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	a := policy.ActorFromUser(caller)
	target, err := uc.inScope(ctx, a, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkMarket(ctx, uc.markets, uc.pol, a, in.MarketID); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.EndTime <= in.StartTime {
		return nil, domain.ErrInvalidInput
	}
	marketID := nilIfEmpty(in.MarketID)
	if marketID == nil {
		marketID = target.MarketID
	}
	s := &entity.Schedule{
		ID:         uuid.New().String(),
		UserID:     target.ID,
		MarketID:   marketID,
		Date:       date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		BreakStart: in.BreakStart,
		BreakEnd:   in.BreakEnd,
		Position:   in.Position,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSchedule(s)
	return &out, nil
}

// Delete borra un turno cuyo dueño está en el alcance del llamador.
func (uc *ScheduleUseCase) Delete(ctx context.Context, caller *entity.User, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.inScope(ctx, policy.ActorFromUser(caller), s.UserID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, s.ID)
}
