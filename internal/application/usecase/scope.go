package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// Clock fuente de tiempo inyectable.
type Clock func() time.Time

// scoper resuelve usuarios objetivo aplicando la política de visibilidad.
// Cualquier objetivo fuera de la empresa o del alcance del actor se reporta como domain.ErrNotFound,
// igual que un id inexistente.
type scoper struct {
	users repository.UserRepository
	pol   *policy.Policy
}

// inCompany carga un usuario de la empresa del actor.
func (s scoper) inCompany(ctx context.Context, a policy.Actor, userID string) (*entity.User, error) {
	u, err := s.users.GetByIDInCompany(ctx, userID, a.CompanyID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// inScope carga un usuario y exige que caiga dentro del alcance de listado del actor.
func (s scoper) inScope(ctx context.Context, a policy.Actor, userID string) (*entity.User, error) {
	u, err := s.inCompany(ctx, a, userID)
	if err != nil {
		return nil, err
	}
	if !s.pol.ListScope(a).Allows(policy.OwnerOf(u)) {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// checkMarket valida que el market exista en la empresa y que el actor pueda operar en él.
func checkMarket(ctx context.Context, markets repository.MarketRepository, pol *policy.Policy, a policy.Actor, marketID *string) error {
	if marketID == nil || *marketID == "" {
		return nil
	}
	m, err := markets.GetByID(ctx, *marketID, a.CompanyID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if !pol.CanAccessMarket(a, m.ID) {
		return domain.ErrNotFound
	}
	return nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func orNow(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}
