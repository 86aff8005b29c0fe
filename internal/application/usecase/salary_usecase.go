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

// StatementRenderer genera el extracto salarial en PDF.
type StatementRenderer interface {
	RenderSalaryStatement(company *entity.Company, user *entity.User, payments []*entity.SalaryPayment, generatedAt time.Time) ([]byte, error)
}

// SalaryUseCase salario acumulado y pagos.
type SalaryUseCase struct {
	scoper
	repo      repository.SalaryRepository
	companies repository.CompanyRepository
	renderer  StatementRenderer
	notifier  notifier
	now       Clock
}

// NewSalaryUseCase construye el caso de uso.
func NewSalaryUseCase(
	repo repository.SalaryRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	notifications repository.NotificationRepository,
	renderer StatementRenderer,
	pol *policy.Policy,
	now Clock,
) *SalaryUseCase {
	now = orNow(now)
	return &SalaryUseCase{
		scoper:    scoper{users: users, pol: pol},
		repo:      repo,
		companies: companies,
		renderer:  renderer,
		notifier:  notifier{repo: notifications, now: now},
		now:       now,
	}
}

// Me resumen salarial del llamador.
func (uc *SalaryUseCase) Me(ctx context.Context, caller *entity.User) (*dto.SalaryResponse, error) {
	return uc.summary(ctx, caller)
}

// ForStaff resumen salarial de un usuario del alcance del llamador.
func (uc *SalaryUseCase) ForStaff(ctx context.Context, caller *entity.User, userID string) (*dto.SalaryResponse, error) {
	target, err := uc.inScope(ctx, policy.ActorFromUser(caller), userID)
	if err != nil {
		return nil, err
	}
	return uc.summary(ctx, target)
}

// Statement extracto PDF del llamador.
func (uc *SalaryUseCase) Statement(ctx context.Context, caller *entity.User) ([]byte, error) {
	company, err := uc.companies.GetByID(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderSalaryStatement(company, caller, payments, uc.now())
}

// RecordPayment registra un pago y descuenta el salario acumulado de forma atómica.
func (uc *SalaryUseCase) RecordPayment(ctx context.Context, caller *entity.User, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.inCompany(ctx, policy.ActorFromUser(caller), in.UserID)
	if err != nil {
		return nil, err
	}
	p := &entity.SalaryPayment{
		ID:     uuid.New().String(),
		UserID: target.ID,
		Amount: in.Amount,
		Period: in.Period,
		PaidAt: uc.now(),
	}
	if err := uc.repo.RecordPayment(ctx, p); err != nil {
		return nil, err
	}
	msg := "A salary payment of " + p.Amount.StringFixed(2) + " was recorded for " + p.Period
	uc.notifier.notify(ctx, "Salary Payment", msg, entity.NotificationGeneral, target.ID)
	out := dto.FromPayment(p)
	return &out, nil
}

func (uc *SalaryUseCase) summary(ctx context.Context, u *entity.User) (*dto.SalaryResponse, error) {
	payments, err := uc.repo.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.SalaryResponse{
		UserID:            u.ID,
		Name:              u.Name,
		HourlyRate:        u.HourlyRate,
		HolidayRate:       u.HolidayRate,
		AccumulatedSalary: u.AccumulatedSalary,
		Payments:          make([]dto.PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, dto.FromPayment(p))
	}
	return out, nil
}
