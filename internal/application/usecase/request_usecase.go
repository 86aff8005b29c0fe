package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// RequestUseCase solicitudes y reportes de empleados.
type RequestUseCase struct {
	scoper
	repo     repository.RequestRepository
	notifier notifier
	now      Clock
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(repo repository.RequestRepository, users repository.UserRepository, notifications repository.NotificationRepository, pol *policy.Policy, now Clock) *RequestUseCase {
	now = orNow(now)
	return &RequestUseCase{
		scoper:   scoper{users: users, pol: pol},
		repo:     repo,
		notifier: notifier{repo: notifications, now: now},
		now:      now,
	}
}

// List solicitudes dentro del alcance; un staff solo ve las suyas.
func (uc *RequestUseCase) List(ctx context.Context, caller *entity.User) ([]dto.RequestResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)), repository.RequestFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromRequest(&r.Request))
	}
	return out, nil
}

// Actionable solicitudes pendientes que el llamador puede revisar: nunca incluye las propias.
func (uc *RequestUseCase) Actionable(ctx context.Context, caller *entity.User) ([]dto.RequestResponse, error) {
	filter := repository.RequestFilter{Status: entity.RequestStatusPending, ExcludeUserID: caller.ID}
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)), filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromRequestWithOwner(r))
	}
	return out, nil
}

// Get devuelve una solicitud cuyo dueño está en el alcance del llamador.
func (uc *RequestUseCase) Get(ctx context.Context, caller *entity.User, id string) (*dto.RequestResponse, error) {
	r, _, err := uc.visible(ctx, policy.ActorFromUser(caller), id)
	if err != nil {
		return nil, err
	}
	out := dto.FromRequest(r)
	return &out, nil
}

// Create registra una solicitud; el dueño es siempre el llamador.
func (uc *RequestUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	now := uc.now()
	r := &entity.Request{
		ID:          uuid.New().String(),
		UserID:      caller.ID,
		Type:        in.Type,
		Subject:     in.Subject,
		Details:     in.Details,
		Status:      entity.RequestStatusPending,
		IsAnonymous: in.IsAnonymous && in.Type == entity.RequestTypeReport,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := dto.FromRequest(r)
	return &out, nil
}

// UpdateStatus aprueba o rechaza una solicitud pendiente y notifica al dueño.
func (uc *RequestUseCase) UpdateStatus(ctx context.Context, caller *entity.User, id string, in dto.UpdateRequestStatusRequest) (*dto.RequestResponse, error) {
	a := policy.ActorFromUser(caller)
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	owner, err := uc.users.GetByIDInCompany(ctx, r.UserID, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.pol.CheckReviewRequest(a, policy.OwnerOf(owner)); err != nil {
		return nil, err
	}
	if in.Status != entity.RequestStatusApproved && in.Status != entity.RequestStatusDeclined {
		return nil, domain.ErrInvalidTransition
	}
	if r.Status != entity.RequestStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	updated, err := uc.repo.Transition(ctx, r.ID, entity.RequestStatusPending, in.Status, caller.ID, uc.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Otro revisor se adelantó.
		return nil, domain.ErrInvalidTransition
	}
	title := fmt.Sprintf("Request %s", updated.Status)
	msg := fmt.Sprintf("Your %s %q was %s", updated.Type, updated.Subject, updated.Status)
	uc.notifier.notify(ctx, title, msg, notificationKind(updated.Type), updated.UserID)
	out := dto.FromRequest(updated)
	return &out, nil
}

// Delete borra una solicitud de la empresa del llamador.
func (uc *RequestUseCase) Delete(ctx context.Context, caller *entity.User, id string) error {
	r, _, err := uc.visible(ctx, policy.ActorFromUser(caller), id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, r.ID)
}

func (uc *RequestUseCase) visible(ctx context.Context, a policy.Actor, id string) (*entity.Request, *entity.User, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	owner, err := uc.inScope(ctx, a, r.UserID)
	if err != nil {
		return nil, nil, err
	}
	return r, owner, nil
}

func notificationKind(requestType string) string {
	if requestType == entity.RequestTypeReport {
		return entity.NotificationReport
	}
	return entity.NotificationRequest
}
