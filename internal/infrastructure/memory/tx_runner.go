package memory

import (
	"context"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// TxRunner emula la transacción de registro: las altas se acumulan y se aplican juntas
// al final, o ninguna si fn falla o hay conflicto de unicidad.
type TxRunner struct {
	s *Store
}

func (r *TxRunner) RunRegistration(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	stage := &registrationStage{}
	companies := &stagedCompanies{CompanyRepository: &CompanyRepository{s: r.s}, stage: stage}
	users := &stagedUsers{UserRepository: &UserRepository{s: r.s}, stage: stage}
	if err := fn(companies, users); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nCompanies, nUsers := len(r.s.companies), len(r.s.users)
	for _, c := range stage.companies {
		if err := r.s.insertCompanyLocked(c); err != nil {
			r.s.companies, r.s.users = r.s.companies[:nCompanies], r.s.users[:nUsers]
			return err
		}
	}
	for _, u := range stage.users {
		if err := r.s.insertUserLocked(u); err != nil {
			r.s.companies, r.s.users = r.s.companies[:nCompanies], r.s.users[:nUsers]
			return err
		}
	}
	return nil
}

type registrationStage struct {
	companies []*entity.Company
	users     []*entity.User
}

type stagedCompanies struct {
	*CompanyRepository
	stage *registrationStage
}

func (s *stagedCompanies) Create(_ context.Context, c *entity.Company) error {
	s.stage.companies = append(s.stage.companies, clonePtr(c))
	return nil
}

type stagedUsers struct {
	*UserRepository
	stage *registrationStage
}

func (s *stagedUsers) Create(_ context.Context, u *entity.User) error {
	s.stage.users = append(s.stage.users, cloneUser(u))
	return nil
}
