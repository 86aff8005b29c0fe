package usecase

import (
	"context"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// NotificationUseCase bandeja de notificaciones propia.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List notificaciones del llamador, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, caller *entity.User) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.FromNotification(n))
	}
	return out, nil
}

// MarkRead marca como leída una notificación propia; la de otro usuario responde domain.ErrNotFound.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, caller *entity.User, id string) (*dto.NotificationResponse, error) {
	n, err := uc.repo.MarkRead(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromNotification(n)
	return &out, nil
}
