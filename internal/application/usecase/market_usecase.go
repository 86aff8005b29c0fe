package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// MarketUseCase CRUD de markets dentro de la empresa del llamador.
type MarketUseCase struct {
	repo repository.MarketRepository
	now  Clock
}

// NewMarketUseCase construye el caso de uso.
func NewMarketUseCase(repo repository.MarketRepository, now Clock) *MarketUseCase {
	return &MarketUseCase{repo: repo, now: orNow(now)}
}

// List markets de la empresa.
func (uc *MarketUseCase) List(ctx context.Context, caller *entity.User) ([]dto.MarketResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MarketResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromMarket(m))
	}
	return out, nil
}

// ListWithCounts markets con número de usuarios asignados.
func (uc *MarketUseCase) ListWithCounts(ctx context.Context, caller *entity.User) ([]dto.MarketResponse, error) {
	list, err := uc.repo.ListWithCounts(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	return fromMarketsWithCount(list), nil
}

// Create crea un market.
func (uc *MarketUseCase) Create(ctx context.Context, caller *entity.User, in dto.MarketRequest) (*dto.MarketResponse, error) {
	m := &entity.Market{
		ID:        uuid.New().String(),
		CompanyID: caller.CompanyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromMarket(m)
	return &out, nil
}

// Update renombra o cambia la dirección.
func (uc *MarketUseCase) Update(ctx context.Context, caller *entity.User, id string, in dto.MarketRequest) (*dto.MarketResponse, error) {
	m, err := uc.repo.GetByID(ctx, id, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Name = in.Name
	m.Address = in.Address
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromMarket(m)
	return &out, nil
}

// Delete borra el market; usuarios, turnos y amonestaciones quedan sin market.
func (uc *MarketUseCase) Delete(ctx context.Context, caller *entity.User, id string) error {
	m, err := uc.repo.GetByID(ctx, id, caller.CompanyID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, m.ID, caller.CompanyID)
}

func fromMarketsWithCount(list []*entity.MarketWithCount) []dto.MarketResponse {
	out := make([]dto.MarketResponse, 0, len(list))
	for _, m := range list {
		r := dto.FromMarket(&m.Market)
		n := m.UserCount
		r.UserCount = &n
		out = append(out, r)
	}
	return out
}
