package memory

import (
	"context"
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.MarketRepository = (*MarketRepository)(nil)

// MarketRepository implementación en memoria de repository.MarketRepository.
type MarketRepository struct {
	s *Store
}

func (r *MarketRepository) Create(_ context.Context, m *entity.Market) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.markets = append(r.s.markets, clonePtr(m))
	return nil
}

func (r *MarketRepository) GetByID(_ context.Context, id, companyID string) (*entity.Market, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.markets {
		if m.ID == id && m.CompanyID == companyID {
			return clonePtr(m), nil
		}
	}
	return nil, nil
}

func (r *MarketRepository) ListByCompany(_ context.Context, companyID string) ([]*entity.Market, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Market
	for _, m := range r.s.markets {
		if m.CompanyID == companyID {
			out = append(out, clonePtr(m))
		}
	}
	return newestFirst(out, func(m *entity.Market) time.Time { return m.CreatedAt }), nil
}

func (r *MarketRepository) ListWithCounts(ctx context.Context, companyID string) ([]*entity.MarketWithCount, error) {
	list, err := r.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MarketWithCount, 0, len(list))
	for _, m := range list {
		n := 0
		for _, u := range r.s.users {
			if u.InMarket(m.ID) {
				n++
			}
		}
		out = append(out, &entity.MarketWithCount{Market: *m, UserCount: n})
	}
	return out, nil
}

func (r *MarketRepository) Update(_ context.Context, m *entity.Market) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.markets {
		if x.ID == m.ID && x.CompanyID == m.CompanyID {
			r.s.markets[i] = clonePtr(m)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MarketRepository) Delete(_ context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := false
	for _, m := range r.s.markets {
		if m.ID == id && m.CompanyID == companyID {
			found = true
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.InMarket(id) {
			u.MarketID = nil
		}
	}
	for _, x := range r.s.schedules {
		if x.MarketID != nil && *x.MarketID == id {
			x.MarketID = nil
		}
	}
	for _, x := range r.s.warnings {
		if x.MarketID != nil && *x.MarketID == id {
			x.MarketID = nil
		}
	}
	r.s.markets = removeIf(r.s.markets, func(m *entity.Market) bool { return m.ID == id })
	return nil
}
