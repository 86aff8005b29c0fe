package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregados del panel ejecutivo en una sola consulta.
type StatsRepo struct {
	q Querier
}

func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) CompanyStats(ctx context.Context, companyID string) (*entity.CompanyStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE company_id = $1),
			(SELECT COUNT(*) FROM users WHERE company_id = $1 AND role IN ('owner', 'admin', 'cfo', 'hr_admin')),
			(SELECT COUNT(*) FROM users WHERE company_id = $1 AND role IN ('manager', 'supervisor')),
			(SELECT COUNT(*) FROM users WHERE company_id = $1 AND role = 'staff'),
			(SELECT COUNT(*) FROM markets WHERE company_id = $1),
			(SELECT COUNT(*) FROM requests r JOIN users u ON u.id = r.user_id
				WHERE u.company_id = $1 AND r.status = 'pending'),
			(SELECT COUNT(*) FROM warnings w JOIN users u ON u.id = w.user_id
				WHERE u.company_id = $1 AND w.status = 'active')`
	var s entity.CompanyStats
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.TotalUsers, &s.Admins, &s.Managers, &s.Staff, &s.TotalMarkets, &s.PendingRequests, &s.ActiveWarnings,
	)
	if err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	return &s, nil
}
