package repository

import (
	"context"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
)

// MarketRepository puerto de persistencia para Market. Todas las operaciones van acotadas a la empresa.
type MarketRepository interface {
	Create(ctx context.Context, market *entity.Market) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Market, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Market, error)
	ListWithCounts(ctx context.Context, companyID string) ([]*entity.MarketWithCount, error)
	Update(ctx context.Context, market *entity.Market) error
	// Delete desasigna (market_id = NULL) usuarios, turnos y amonestaciones y luego borra el market.
	Delete(ctx context.Context, id, companyID string) error
}
