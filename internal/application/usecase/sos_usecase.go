package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// SOSUseCase alertas de emergencia.
type SOSUseCase struct {
	scoper
	repo     repository.SOSRepository
	notifier notifier
	now      Clock
}

// NewSOSUseCase construye el caso de uso.
func NewSOSUseCase(repo repository.SOSRepository, users repository.UserRepository, notifications repository.NotificationRepository, pol *policy.Policy, now Clock) *SOSUseCase {
	now = orNow(now)
	return &SOSUseCase{
		scoper:   scoper{users: users, pol: pol},
		repo:     repo,
		notifier: notifier{repo: notifications, now: now},
		now:      now,
	}
}

// Create dispara una alerta del llamador y notifica a los ejecutivos de su empresa.
func (uc *SOSUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateSOSRequest) (*dto.SOSResponse, error) {
	a := &entity.SOSAlert{
		ID:        uuid.New().String(),
		UserID:    caller.ID,
		Type:      in.Type,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	// La alerta ya está guardada: un fallo al buscar destinatarios no la deshace.
	execs, err := uc.users.List(ctx,
		policy.Scope{Kind: policy.ScopeCompany, CompanyID: caller.CompanyID},
		repository.UserFilter{Roles: uc.pol.Model().Roles(rbac.GroupExecutive).Roles()},
	)
	if err != nil {
		log.Warn().Err(err).Str("sos_id", a.ID).Msg("destinatarios de la alerta SOS")
	}
	ids := make([]string, 0, len(execs))
	for _, u := range execs {
		if u.ID != caller.ID {
			ids = append(ids, u.ID)
		}
	}
	msg := fmt.Sprintf("%s triggered a %s alert", caller.Name, a.Type)
	uc.notifier.notify(ctx, "SOS Alert", msg, entity.NotificationSOS, ids...)
	out := dto.FromSOS(a)
	return &out, nil
}

// List alertas dentro del alcance.
func (uc *SOSUseCase) List(ctx context.Context, caller *entity.User) ([]dto.SOSResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SOSResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromSOS(a))
	}
	return out, nil
}

// Resolve cierra una alerta del alcance.
func (uc *SOSUseCase) Resolve(ctx context.Context, caller *entity.User, id string) (*dto.SOSResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.inScope(ctx, policy.ActorFromUser(caller), a.UserID); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Resolve(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSOS(updated)
	return &out, nil
}
