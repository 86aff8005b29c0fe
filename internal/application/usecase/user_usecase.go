package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
	"github.com/jhoicas/staffhub-api/pkg/normalize"
	"github.com/jhoicas/staffhub-api/pkg/password"
	"github.com/shopspring/decimal"
)

// SessionRevoker revoca todas las sesiones de un usuario.
type SessionRevoker interface {
	DestroyAll(ctx context.Context, userID string) error
}

// UserUseCase aplica reglas de negocio para usuarios: perfil propio y gestión.
type UserUseCase struct {
	scoper
	companies repository.CompanyRepository
	markets   repository.MarketRepository
	schedules repository.ScheduleRepository
	sessions  SessionRevoker
	hasher    password.Hasher
	now       Clock
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	markets repository.MarketRepository,
	schedules repository.ScheduleRepository,
	sessions SessionRevoker,
	hasher password.Hasher,
	pol *policy.Policy,
	now Clock,
) *UserUseCase {
	return &UserUseCase{
		scoper:    scoper{users: users, pol: pol},
		companies: companies,
		markets:   markets,
		schedules: schedules,
		sessions:  sessions,
		hasher:    hasher,
		now:       orNow(now),
	}
}

// List usuarios dentro del alcance del llamador.
func (uc *UserUseCase) List(ctx context.Context, caller *entity.User) ([]dto.UserResponse, error) {
	a := policy.ActorFromUser(caller)
	list, err := uc.users.List(ctx, uc.pol.ListScope(a), repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(list), nil
}

// ListStaff usuarios con rol staff dentro del alcance.
func (uc *UserUseCase) ListStaff(ctx context.Context, caller *entity.User) ([]dto.UserResponse, error) {
	a := policy.ActorFromUser(caller)
	list, err := uc.users.List(ctx, uc.pol.ListScope(a), repository.UserFilter{Roles: []rbac.Role{rbac.RoleStaff}})
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(list), nil
}

// Team staff del alcance con su turno de hoy.
func (uc *UserUseCase) Team(ctx context.Context, caller *entity.User) ([]dto.TeamMemberResponse, error) {
	a := policy.ActorFromUser(caller)
	members, err := uc.users.List(ctx, uc.pol.ListScope(a), repository.UserFilter{Roles: []rbac.Role{rbac.RoleStaff}})
	if err != nil {
		return nil, err
	}
	today, err := uc.schedules.ListForDay(ctx, caller.CompanyID, todayUTC(uc.now()))
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]*entity.Schedule, len(today))
	for _, s := range today {
		if _, ok := byUser[s.UserID]; !ok {
			byUser[s.UserID] = s
		}
	}
	out := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.TeamMemberResponse{UserResponse: dto.FromUser(m)}
		if s, ok := byUser[m.ID]; ok {
			sr := dto.FromSchedule(s)
			item.TodaySchedule = &sr
		}
		out = append(out, item)
	}
	return out, nil
}

// Get devuelve un usuario si el llamador puede verlo (ejecutivo o él mismo).
// Un id de otra empresa responde igual que uno inexistente.
func (uc *UserUseCase) Get(ctx context.Context, caller *entity.User, id string) (*dto.UserResponse, error) {
	a := policy.ActorFromUser(caller)
	u, err := uc.inCompany(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !uc.pol.CanAccessUser(a, u.ID) {
		return nil, domain.ErrNotFound
	}
	out := dto.FromUser(u)
	return &out, nil
}

// UpdateProfile aplica solo los campos de perfil editables por el propio usuario.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, caller *entity.User, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u := *caller
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = *in.ProfilePicture
	}
	if in.Theme != nil {
		u.Theme = *in.Theme
	}
	if in.AccentColor != nil {
		u.AccentColor = *in.AccentColor
	}
	if in.Language != nil {
		u.Language = *in.Language
	}
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	out := dto.FromUser(&u)
	return &out, nil
}

// SetTwoFactor activa o desactiva el indicador de doble factor del propio usuario.
func (uc *UserUseCase) SetTwoFactor(ctx context.Context, caller *entity.User, enabled bool) (*dto.UserResponse, error) {
	u := *caller
	u.TwoFactorEnabled = enabled
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	out := dto.FromUser(&u)
	return &out, nil
}

// Create alta administrativa. El rol asignado no puede superar al del llamador.
func (uc *UserUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	a := policy.ActorFromUser(caller)
	role := rbac.Role(in.Role)
	if err := uc.pol.CheckAssignRole(a, role); err != nil {
		return nil, err
	}
	if err := checkMarket(ctx, uc.markets, uc.pol, a, in.MarketID); err != nil {
		return nil, err
	}
	email := normalize.Email(in.Email)
	existing, err := uc.users.GetByEmailAndCompany(ctx, email, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companies.GetByID(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	hourly, holiday := company.DefaultHourlyRate, company.DefaultHolidayRate
	if in.HourlyRate != nil {
		if in.HourlyRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		hourly = *in.HourlyRate
	}
	if in.HolidayRate != nil {
		if in.HolidayRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		holiday = *in.HolidayRate
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:                uuid.New().String(),
		CompanyID:         caller.CompanyID,
		Email:             email,
		PasswordHash:      hash,
		Name:              in.Name,
		Phone:             in.Phone,
		Role:              role,
		Standing:          entity.StandingAllGood,
		MarketID:          nilIfEmpty(in.MarketID),
		HourlyRate:        hourly,
		HolidayRate:       holiday,
		AccumulatedSalary: decimal.Zero,
		Theme:             "light",
		Language:          "en",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

// Update edición administrativa de un usuario de la empresa.
// El objetivo debe tener rango menor o igual al del llamador.
func (uc *UserUseCase) Update(ctx context.Context, caller *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	a := policy.ActorFromUser(caller)
	target, err := uc.inCompany(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !uc.pol.CanManageTarget(a, target.Role) {
		return nil, domain.ErrForbidden
	}
	u := *target
	if in.Role != nil {
		role := rbac.Role(*in.Role)
		if err := uc.pol.CheckAssignRole(a, role); err != nil {
			return nil, err
		}
		u.Role = role
	}
	if in.Email != nil {
		email := normalize.Email(*in.Email)
		if email != u.Email {
			dup, err := uc.users.GetByEmailAndCompany(ctx, email, caller.CompanyID)
			if err != nil {
				return nil, err
			}
			if dup != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Standing != nil {
		u.Standing = *in.Standing
	}
	if in.MarketID != nil {
		if err := checkMarket(ctx, uc.markets, uc.pol, a, in.MarketID); err != nil {
			return nil, err
		}
		u.MarketID = nilIfEmpty(in.MarketID)
	}
	if in.HourlyRate != nil {
		if in.HourlyRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		u.HourlyRate = *in.HourlyRate
	}
	if in.HolidayRate != nil {
		if in.HolidayRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		u.HolidayRate = *in.HolidayRate
	}
	now := uc.now()
	u.UpdatedAt = now
	if err := uc.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	if in.Password != nil {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		if err := uc.users.UpdatePassword(ctx, u.ID, hash, now); err != nil {
			return nil, err
		}
		if err := uc.sessions.DestroyAll(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	out := dto.FromUser(&u)
	return &out, nil
}

// UpdateStanding cambia el standing de un usuario del alcance del llamador.
func (uc *UserUseCase) UpdateStanding(ctx context.Context, caller *entity.User, id, standing string) (*dto.UserResponse, error) {
	if !entity.ValidStanding(standing) {
		return nil, domain.ErrInvalidInput
	}
	a := policy.ActorFromUser(caller)
	target, err := uc.inScope(ctx, a, id)
	if err != nil {
		return nil, err
	}
	u := *target
	u.Standing = standing
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	out := dto.FromUser(&u)
	return &out, nil
}

// Delete borra un usuario de la empresa y revoca sus sesiones. Nadie se borra a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, caller *entity.User, id string) error {
	if caller.ID == id {
		return domain.ErrForbidden
	}
	a := policy.ActorFromUser(caller)
	target, err := uc.inCompany(ctx, a, id)
	if err != nil {
		return err
	}
	if !uc.pol.CanManageTarget(a, target.Role) {
		return domain.ErrForbidden
	}
	if err := uc.users.Delete(ctx, target.ID, caller.CompanyID); err != nil {
		return err
	}
	return uc.sessions.DestroyAll(ctx, target.ID)
}

// todayUTC trunca al día.
func todayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
