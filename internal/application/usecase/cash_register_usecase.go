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

// CashRegisterUseCase cuadres de caja.
type CashRegisterUseCase struct {
	repo     repository.CashRegisterRepository
	pol      *policy.Policy
	notifier notifier
	now      Clock
}

// NewCashRegisterUseCase construye el caso de uso.
func NewCashRegisterUseCase(repo repository.CashRegisterRepository, notifications repository.NotificationRepository, pol *policy.Policy, now Clock) *CashRegisterUseCase {
	now = orNow(now)
	return &CashRegisterUseCase{repo: repo, pol: pol, notifier: notifier{repo: notifications, now: now}, now: now}
}

// List cuadres dentro del alcance, por fecha de turno descendente.
func (uc *CashRegisterUseCase) List(ctx context.Context, caller *entity.User) ([]dto.CashEntryResponse, error) {
	list, err := uc.repo.List(ctx, uc.pol.ListScope(policy.ActorFromUser(caller)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromCashEntry(e))
	}
	return out, nil
}

// Create registra el cuadre del llamador. Un faltante >= CashShortageAlertThreshold genera notificación.
func (uc *CashRegisterUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateCashEntryRequest) (*dto.CashEntryResponse, error) {
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.ShiftDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.CashRegisterEntry{
		ID:        uuid.New().String(),
		UserID:    caller.ID,
		ShiftDate: date,
		Status:    in.Status,
		Amount:    in.Amount,
		Notes:     in.Notes,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	if e.Status == entity.CashStatusShortage && e.Amount.GreaterThanOrEqual(entity.CashShortageAlertThreshold) {
		msg := fmt.Sprintf("Cash shortage of %s reported for %s", e.Amount.StringFixed(2), in.ShiftDate)
		uc.notifier.notify(ctx, "Cash Shortage", msg, entity.NotificationCash, caller.ID)
	}
	out := dto.FromCashEntry(e)
	return &out, nil
}
