package auth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
	"github.com/jhoicas/staffhub-api/internal/metrics"
	"github.com/jhoicas/staffhub-api/pkg/logger"
	"github.com/jhoicas/staffhub-api/pkg/normalize"
	"github.com/jhoicas/staffhub-api/pkg/password"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta el alta de empresa + owner en una sola transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// LockedError rechazo por bloqueo activo. errors.Is(err, domain.ErrLocked) es true.
type LockedError struct {
	Until time.Time
	now   time.Time
}

func (e *LockedError) Error() string { return domain.ErrLocked.Error() }

func (e *LockedError) Unwrap() error { return domain.ErrLocked }

// RetryAfter segundos restantes de bloqueo, redondeados hacia arriba.
func (e *LockedError) RetryAfter() int {
	secs := int(math.Ceil(e.Until.Sub(e.now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// Deps dependencias del caso de uso de autenticación.
type Deps struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
	Markets   repository.MarketRepository
	Contracts repository.ContractRepository
	Tx        TxRunner
	Sessions  *SessionManager
	Hasher    password.Hasher
	Model     *rbac.Model
	Lockout   policy.Lockout
	Logger    *logger.Logger
	Now       Clock
}

// AuthUseCase registro, login, logout y perfil autenticado.
type AuthUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	markets   repository.MarketRepository
	contracts repository.ContractRepository
	tx        TxRunner
	sessions  *SessionManager
	hasher    password.Hasher
	model     *rbac.Model
	lockout   policy.Lockout
	log       *logger.Logger
	now       Clock

	// dummyHash se compara cuando el usuario no existe para que el tiempo de respuesta no lo delate.
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(d Deps) (*AuthUseCase, error) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Lockout.MaxAttempts <= 0 {
		d.Lockout = policy.DefaultLockout()
	}
	dummy, err := d.Hasher.Hash("staffhub-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("hash de referencia: %w", err)
	}
	return &AuthUseCase{
		users:     d.Users,
		companies: d.Companies,
		markets:   d.Markets,
		contracts: d.Contracts,
		tx:        d.Tx,
		sessions:  d.Sessions,
		hasher:    d.Hasher,
		model:     d.Model,
		lockout:   d.Lockout,
		log:       d.Logger,
		now:       d.Now,
		dummyHash: dummy,
	}, nil
}

// RegisterCompany crea la empresa y su primer usuario con el rol más alto del modelo, y abre sesión.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	code := normalize.CompanyCode(in.CompanyCode)
	existing, err := uc.companies.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCompanyCodeExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.CompanyName,
		Code:               code,
		Address:            in.CompanyAddress,
		DefaultHourlyRate:  entity.DefaultHourlyRate,
		DefaultHolidayRate: entity.DefaultHolidayRate,
		CreatedAt:          now,
	}
	owner := newUser(company, normalize.Email(in.OwnerEmail), hash, in.OwnerName, uc.model.TopRole(), now)
	owner.Phone = in.OwnerPhone

	err = uc.tx.RunRegistration(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("code", company.Code).Msg("empresa registrada")
	return uc.issue(ctx, owner)
}

// Register da de alta a un empleado (siempre staff) en una empresa existente por su código.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	company, err := uc.companies.GetByCode(ctx, normalize.CompanyCode(in.CompanyCode))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidCompanyCode
	}
	email := normalize.Email(in.Email)
	existing, err := uc.users.GetByEmailAndCompany(ctx, email, company.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.MarketID != nil && *in.MarketID != "" {
		m, err := uc.markets.GetByID(ctx, *in.MarketID, company.ID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := newUser(company, email, hash, in.Name, rbac.RoleStaff, uc.now())
	user.Phone = in.Phone
	if in.MarketID != nil && *in.MarketID != "" {
		user.MarketID = in.MarketID
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(ctx, user)
}

// Login resuelve empresa, usuario, bloqueo y contraseña, en ese orden.
// Empresa inexistente, usuario inexistente y contraseña incorrecta devuelven el mismo
// domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	now := uc.now()

	company, err := uc.companies.GetByCode(ctx, normalize.CompanyCode(in.CompanyCode))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, uc.rejectUnknown(in.Password)
	}

	user, err := uc.users.GetByEmailAndCompany(ctx, normalize.Email(in.Email), company.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, uc.rejectUnknown(in.Password)
	}

	if uc.lockout.IsLocked(user.LockedUntil, now) {
		metrics.RecordLoginAttempt(metrics.LoginLocked)
		return nil, &LockedError{Until: *user.LockedUntil, now: now}
	}

	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		attempts, until, err := uc.users.RegisterFailedLogin(ctx, user.ID, uc.lockout, now)
		if err != nil {
			return nil, err
		}
		if uc.lockout.IsLocked(until, now) {
			uc.log.Warn().Str("user_id", user.ID).Int("attempts", attempts).Time("locked_until", *until).Msg("cuenta bloqueada por intentos fallidos")
			metrics.RecordLoginAttempt(metrics.LoginLocked)
			return nil, &LockedError{Until: *until, now: now}
		}
		uc.log.Warn().Str("user_id", user.ID).Int("attempts", attempts).Msg("login fallido")
		metrics.RecordLoginAttempt(metrics.LoginInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	if user.FailedLoginAttempts != 0 || user.LockedUntil != nil {
		if err := uc.users.ResetFailedLogins(ctx, user.ID); err != nil {
			return nil, err
		}
		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
	}
	metrics.RecordLoginAttempt(metrics.LoginSuccess)
	return uc.issue(ctx, user)
}

// Logout revoca solo el token del llamador.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Destroy(ctx, token)
}

// Me devuelve el usuario autenticado con su empresa y contrato activo.
func (uc *AuthUseCase) Me(ctx context.Context, user *entity.User) (*dto.MeResponse, error) {
	out := &dto.MeResponse{User: dto.MeUser{UserResponse: dto.FromUser(user)}}
	company, err := uc.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company != nil {
		c := dto.FromCompany(company)
		out.User.Company = &c
	}
	contract, err := uc.contracts.GetActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if contract != nil {
		c := dto.FromContract(contract)
		out.User.Contract = &c
	}
	return out, nil
}

// ChangePassword verifica la contraseña actual, guarda la nueva y revoca el resto de sesiones.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, user *entity.User, currentToken string, in dto.ChangePasswordRequest) error {
	if !uc.hasher.Verify(in.CurrentPassword, user.PasswordHash) {
		return domain.ErrWrongPassword
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash, uc.now()); err != nil {
		return err
	}
	return uc.sessions.DestroyOthers(ctx, user.ID, currentToken)
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	token, err := uc.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.FromUser(user), Token: token}, nil
}

func (uc *AuthUseCase) rejectUnknown(plain string) error {
	_ = uc.hasher.Verify(plain, uc.dummyHash)
	metrics.RecordLoginAttempt(metrics.LoginInvalidCredentials)
	return domain.ErrInvalidCredentials
}

func newUser(company *entity.Company, email, hash, name string, role rbac.Role, now time.Time) *entity.User {
	return &entity.User{
		ID:                uuid.New().String(),
		CompanyID:         company.ID,
		Email:             email,
		PasswordHash:      hash,
		Name:              name,
		Role:              role,
		Standing:          entity.StandingAllGood,
		HourlyRate:        company.DefaultHourlyRate,
		HolidayRate:       company.DefaultHolidayRate,
		AccumulatedSalary: decimal.Zero,
		Theme:             "light",
		Language:          "en",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
