package memory

import (
	"context"

	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepository)(nil)

// CompanyRepository implementación en memoria de repository.CompanyRepository.
type CompanyRepository struct {
	s *Store
}

func (r *CompanyRepository) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertCompanyLocked(c)
}

func (s *Store) insertCompanyLocked(c *entity.Company) error {
	for _, x := range s.companies {
		if x.Code == c.Code {
			return domain.ErrCompanyCodeExists
		}
	}
	s.companies = append(s.companies, clonePtr(c))
	return nil
}

func (r *CompanyRepository) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.ID == id {
			return clonePtr(c), nil
		}
	}
	return nil, nil
}

func (r *CompanyRepository) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.Code == code {
			return clonePtr(c), nil
		}
	}
	return nil, nil
}

func (r *CompanyRepository) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.companies {
		if x.ID == c.ID {
			u := clonePtr(c)
			u.Code = x.Code
			r.s.companies[i] = u
			return nil
		}
	}
	return domain.ErrNotFound
}
