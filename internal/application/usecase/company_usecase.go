package usecase

import (
	"context"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
)

// openSOSOnDashboard alertas abiertas mostradas en el panel ejecutivo.
const openSOSOnDashboard = 10

// CompanyUseCase empresa del llamador, ajustes y paneles ejecutivos.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	markets   repository.MarketRepository
	stats     repository.StatsRepository
	sos       repository.SOSRepository
	now       Clock
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	markets repository.MarketRepository,
	stats repository.StatsRepository,
	sos repository.SOSRepository,
	now Clock,
) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, markets: markets, stats: stats, sos: sos, now: orNow(now)}
}

func (uc *CompanyUseCase) load(ctx context.Context, caller *entity.User) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Get devuelve la empresa del llamador.
func (uc *CompanyUseCase) Get(ctx context.Context, caller *entity.User) (*dto.CompanyResponse, error) {
	c, err := uc.load(ctx, caller)
	if err != nil {
		return nil, err
	}
	out := dto.FromCompany(c)
	return &out, nil
}

// Update actualiza nombre y dirección.
func (uc *CompanyUseCase) Update(ctx context.Context, caller *entity.User, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.load(ctx, caller)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCompany(c)
	return &out, nil
}

// Settings tarifas por defecto.
func (uc *CompanyUseCase) Settings(ctx context.Context, caller *entity.User) (*dto.SettingsResponse, error) {
	c, err := uc.load(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{DefaultHourlyRate: c.DefaultHourlyRate, DefaultHolidayRate: c.DefaultHolidayRate}, nil
}

// UpdateSettings cambia las tarifas por defecto; no afecta a usuarios ya creados.
func (uc *CompanyUseCase) UpdateSettings(ctx context.Context, caller *entity.User, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	c, err := uc.load(ctx, caller)
	if err != nil {
		return nil, err
	}
	if in.DefaultHourlyRate != nil {
		if in.DefaultHourlyRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		c.DefaultHourlyRate = *in.DefaultHourlyRate
	}
	if in.DefaultHolidayRate != nil {
		if in.DefaultHolidayRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		c.DefaultHolidayRate = *in.DefaultHolidayRate
	}
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{DefaultHourlyRate: c.DefaultHourlyRate, DefaultHolidayRate: c.DefaultHolidayRate}, nil
}

// Stats agregados de la empresa del llamador.
func (uc *CompanyUseCase) Stats(ctx context.Context, caller *entity.User) (*dto.CompanyStatsResponse, error) {
	s, err := uc.stats.CompanyStats(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	out := dto.FromStats(s)
	return &out, nil
}

// Dashboard panel ejecutivo.
func (uc *CompanyUseCase) Dashboard(ctx context.Context, caller *entity.User) (*dto.AdminDashboardResponse, error) {
	c, err := uc.load(ctx, caller)
	if err != nil {
		return nil, err
	}
	s, err := uc.stats.CompanyStats(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	markets, err := uc.markets.ListWithCounts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	open, err := uc.sos.ListUnresolved(ctx, c.ID, openSOSOnDashboard)
	if err != nil {
		return nil, err
	}
	out := &dto.AdminDashboardResponse{
		Company:   dto.FromCompany(c),
		Stats:     dto.FromStats(s),
		Markets:   fromMarketsWithCount(markets),
		OpenSOS:   make([]dto.SOSResponse, 0, len(open)),
		Generated: uc.now(),
	}
	for _, a := range open {
		out.OpenSOS = append(out.OpenSOS, dto.FromSOS(a))
	}
	return out, nil
}
