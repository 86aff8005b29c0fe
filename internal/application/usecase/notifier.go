package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// notifier persiste notificaciones; la entrega push queda fuera de este servicio.
// Se llama después de guardar la fila principal: si falla solo se registra en el log,
// la operación ya está hecha y no se devuelve 500 por un aviso perdido.
type notifier struct {
	repo repository.NotificationRepository
	now  Clock
}

func (n notifier) notify(ctx context.Context, title, message, kind string, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	now := n.now()
	list := make([]*entity.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		list = append(list, &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    id,
			Title:     title,
			Message:   message,
			Type:      kind,
			CreatedAt: now,
		})
	}
	if err := n.repo.Create(ctx, list...); err != nil {
		log.Warn().Err(err).Str("kind", kind).Int("recipients", len(list)).Msg("notificación no guardada")
	}
}
