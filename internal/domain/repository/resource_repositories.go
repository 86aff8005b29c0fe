package repository

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
)

// Los listados reciben un policy.Scope y lo aplican uniendo con el usuario dueño,
// ordenando por fecha descendente.

// ScheduleRepository turnos.
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id string) (*entity.Schedule, error)
	List(ctx context.Context, scope policy.Scope) ([]*entity.Schedule, error)
	// ListForDay turnos de la empresa cuya fecha cae en el día dado.
	ListForDay(ctx context.Context, companyID string, day time.Time) ([]*entity.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// RequestFilter filtros de solicitudes.
type RequestFilter struct {
	Status        string // vacío = todas
	ExcludeUserID string // excluye las solicitudes de este usuario
}

// RequestRepository solicitudes y reportes.
type RequestRepository interface {
	Create(ctx context.Context, r *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	List(ctx context.Context, scope policy.Scope, filter RequestFilter) ([]*entity.RequestWithOwner, error)
	// Transition cambia el estado solo si sigue en `from`; devuelve (nil, nil) si no aplicó.
	Transition(ctx context.Context, id, from, to, reviewerID string, now time.Time) (*entity.Request, error)
	Delete(ctx context.Context, id string) error
}

// WarningRepository amonestaciones.
type WarningRepository interface {
	Create(ctx context.Context, w *entity.Warning) error
	GetByID(ctx context.Context, id string) (*entity.Warning, error)
	List(ctx context.Context, scope policy.Scope) ([]*entity.Warning, error)
	Resolve(ctx context.Context, id string, now time.Time) (*entity.Warning, error)
}

// CashRegisterRepository cuadres de caja.
type CashRegisterRepository interface {
	Create(ctx context.Context, e *entity.CashRegisterEntry) error
	List(ctx context.Context, scope policy.Scope) ([]*entity.CashRegisterEntry, error)
}

// ContractRepository contratos.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	GetActiveByUser(ctx context.Context, userID string) (*entity.Contract, error)
	List(ctx context.Context, scope policy.Scope) ([]*entity.Contract, error)
	Update(ctx context.Context, c *entity.Contract) error
	// DeactivateOthers desactiva en una sola sentencia los contratos activos del usuario salvo keepID.
	DeactivateOthers(ctx context.Context, userID, keepID string, at time.Time) error
}

// SOSRepository alertas de emergencia.
type SOSRepository interface {
	Create(ctx context.Context, a *entity.SOSAlert) error
	GetByID(ctx context.Context, id string) (*entity.SOSAlert, error)
	List(ctx context.Context, scope policy.Scope) ([]*entity.SOSAlert, error)
	ListUnresolved(ctx context.Context, companyID string, limit int) ([]*entity.SOSAlert, error)
	Resolve(ctx context.Context, id string) (*entity.SOSAlert, error)
}

// SalaryRepository pagos de salario.
type SalaryRepository interface {
	// RecordPayment inserta el pago y descuenta accumulated_salary del usuario en una sola
	// transacción, con el decremento hecho por la base de datos.
	RecordPayment(ctx context.Context, p *entity.SalaryPayment) error
	ListByUser(ctx context.Context, userID string) ([]*entity.SalaryPayment, error)
}

// NotificationRepository notificaciones persistidas.
type NotificationRepository interface {
	Create(ctx context.Context, n ...*entity.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)
	// MarkRead devuelve (nil, nil) si la notificación no existe o no es del usuario.
	MarkRead(ctx context.Context, id, userID string) (*entity.Notification, error)
}

// StatsRepository agregados por empresa.
type StatsRepository interface {
	CompanyStats(ctx context.Context, companyID string) (*entity.CompanyStats, error)
}
