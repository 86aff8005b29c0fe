// Package memory implementa todos los puertos de repositorio en memoria.
//
// Pensado para tests y despliegues de un solo proceso: el estado se pierde al reiniciar
// y no se comparte entre réplicas. Todas las operaciones toman el mismo mutex, así que
// los incrementos del contador de login y el descuento de salario son atómicos.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
)

// Store estado compartido por todos los adaptadores en memoria.
type Store struct {
	mu sync.Mutex

	companies     []*entity.Company
	users         []*entity.User
	markets       []*entity.Market
	schedules     []*entity.Schedule
	requests      []*entity.Request
	warnings      []*entity.Warning
	cash          []*entity.CashRegisterEntry
	contracts     []*entity.Contract
	sos           []*entity.SOSAlert
	payments      []*entity.SalaryPayment
	notifications []*entity.Notification
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{}
}

// Repositories agrupa los adaptadores sobre un mismo Store.
type Repositories struct {
	Users         *UserRepository
	Companies     *CompanyRepository
	Markets       *MarketRepository
	Schedules     *ScheduleRepository
	Requests      *RequestRepository
	Warnings      *WarningRepository
	CashRegister  *CashRegisterRepository
	Contracts     *ContractRepository
	SOS           *SOSRepository
	Salary        *SalaryRepository
	Notifications *NotificationRepository
	Stats         *StatsRepository
	Tx            *TxRunner
}

// NewRepositories construye todos los adaptadores sobre s.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Users:         &UserRepository{s: s},
		Companies:     &CompanyRepository{s: s},
		Markets:       &MarketRepository{s: s},
		Schedules:     &ScheduleRepository{s: s},
		Requests:      &RequestRepository{s: s},
		Warnings:      &WarningRepository{s: s},
		CashRegister:  &CashRegisterRepository{s: s},
		Contracts:     &ContractRepository{s: s},
		SOS:           &SOSRepository{s: s},
		Salary:        &SalaryRepository{s: s},
		Notifications: &NotificationRepository{s: s},
		Stats:         &StatsRepository{s: s},
		Tx:            &TxRunner{s: s},
	}
}

// userLocked busca un usuario por id. Requiere s.mu.
func (s *Store) userLocked(id string) *entity.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// allowsLocked informa si la fila del usuario dueño cae en el alcance. Requiere s.mu.
func (s *Store) allowsLocked(scope policy.Scope, ownerID string) bool {
	u := s.userLocked(ownerID)
	if u == nil {
		return false
	}
	return scope.Allows(policy.OwnerOf(u))
}

// newestFirst ordena por fecha descendente; en empate, la última insertada primero.
func newestFirst[T any](rows []T, at func(T) time.Time) []T {
	out := make([]T, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func removeIf[T any](rows []T, drop func(T) bool) []T {
	out := rows[:0]
	for _, r := range rows {
		if !drop(r) {
			out = append(out, r)
		}
	}
	return out
}
