// Package bootstrap arma repositorios, sesiones y casos de uso según la configuración.
// Lo comparten el servidor HTTP y staffctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/staffhub-api/internal/application/auth"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/domain/repository"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/memory"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/pdf"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/postgres"
	redisstore "github.com/jhoicas/staffhub-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/staffhub-api/internal/interfaces/http"
	"github.com/jhoicas/staffhub-api/pkg/config"
	"github.com/jhoicas/staffhub-api/pkg/logger"
	"github.com/jhoicas/staffhub-api/pkg/password"
)

// Repositories puertos de persistencia ya resueltos al driver configurado.
type Repositories struct {
	Users         repository.UserRepository
	Companies     repository.CompanyRepository
	Markets       repository.MarketRepository
	Schedules     repository.ScheduleRepository
	Requests      repository.RequestRepository
	Warnings      repository.WarningRepository
	CashRegister  repository.CashRegisterRepository
	Contracts     repository.ContractRepository
	SOS           repository.SOSRepository
	Salary        repository.SalaryRepository
	Notifications repository.NotificationRepository
	Stats         repository.StatsRepository
	Tx            auth.TxRunner
}

// Container todo lo que un binario necesita para atender peticiones.
type Container struct {
	Config   *config.Config
	Log      *logger.Logger
	Pool     *pgxpool.Pool // nil con STORAGE_DRIVER=memory
	Repos    Repositories
	Sessions *auth.SessionManager
	Model    *rbac.Model
	Policy   *policy.Policy
	Hasher   password.Hasher
	Auth     *auth.AuthUseCase

	closers []func()
}

// New abre las conexiones que pida la configuración y construye el grafo de dependencias.
// Ante error cierra lo que ya hubiera abierto.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *Container, err error) {
	c := &Container{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	if c.Model, err = rbac.NewModel(cfg.Auth.RoleModel); err != nil {
		return nil, err
	}
	c.Policy = policy.New(c.Model, policy.Options{UnassignedManagersSeeCompany: cfg.Auth.UnassignedSeeCompany})
	c.Hasher = password.NewBcrypt(cfg.Auth.BcryptCost)

	if err = c.openStorage(ctx); err != nil {
		return nil, err
	}
	store, err := c.openSessions(ctx)
	if err != nil {
		return nil, err
	}
	c.Sessions = auth.NewSessionManager(store, cfg.Session.TTL, nil)

	c.Auth, err = auth.NewAuthUseCase(auth.Deps{
		Users:     c.Repos.Users,
		Companies: c.Repos.Companies,
		Markets:   c.Repos.Markets,
		Contracts: c.Repos.Contracts,
		Tx:        c.Repos.Tx,
		Sessions:  c.Sessions,
		Hasher:    c.Hasher,
		Model:     c.Model,
		Lockout:   policy.Lockout{MaxAttempts: cfg.Auth.LockoutMaxAttempts, Duration: cfg.Auth.LockoutDuration},
		Logger:    log.Component("auth"),
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) openStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.DriverMemory:
		c.Log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		r := memory.NewRepositories(memory.NewStore())
		c.Repos = Repositories{
			Users:         r.Users,
			Companies:     r.Companies,
			Markets:       r.Markets,
			Schedules:     r.Schedules,
			Requests:      r.Requests,
			Warnings:      r.Warnings,
			CashRegister:  r.CashRegister,
			Contracts:     r.Contracts,
			SOS:           r.SOS,
			Salary:        r.Salary,
			Notifications: r.Notifications,
			Stats:         r.Stats,
			Tx:            r.Tx,
		}
		return nil
	default:
		pool, err := postgres.NewPool(ctx, c.Config.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.Pool = pool
		c.closers = append(c.closers, pool.Close)
		c.Repos = Repositories{
			Users:         postgres.NewUserRepository(pool),
			Companies:     postgres.NewCompanyRepository(pool),
			Markets:       postgres.NewMarketRepository(pool),
			Schedules:     postgres.NewScheduleRepository(pool),
			Requests:      postgres.NewRequestRepository(pool),
			Warnings:      postgres.NewWarningRepository(pool),
			CashRegister:  postgres.NewCashRegisterRepository(pool),
			Contracts:     postgres.NewContractRepository(pool),
			SOS:           postgres.NewSOSRepository(pool),
			Salary:        postgres.NewSalaryRepository(pool),
			Notifications: postgres.NewNotificationRepository(pool),
			Stats:         postgres.NewStatsRepository(pool),
			Tx:            postgres.NewTxRunner(pool),
		}
		return nil
	}
}

func (c *Container) openSessions(ctx context.Context) (repository.SessionStore, error) {
	switch c.Config.Session.Store {
	case config.DriverRedis:
		rdb, err := redisstore.NewClient(ctx, c.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return redisstore.NewSessionStore(rdb, nil), nil
	case config.DriverMemory:
		return memory.NewSessionStore(), nil
	default:
		if c.Pool == nil {
			return nil, fmt.Errorf("SESSION_STORE=postgres sin pool de PostgreSQL")
		}
		return postgres.NewSessionStore(c.Pool), nil
	}
}

// RouterDeps casos de uso listos para httpRouter.NewApp.
func (c *Container) RouterDeps() httpRouter.RouterDeps {
	r := c.Repos
	return httpRouter.RouterDeps{
		AppName:              c.Config.App.Name,
		AuthUC:               c.Auth,
		UserUC:               usecase.NewUserUseCase(r.Users, r.Companies, r.Markets, r.Schedules, c.Sessions, c.Hasher, c.Policy, nil),
		CompanyUC:            usecase.NewCompanyUseCase(r.Companies, r.Markets, r.Stats, r.SOS, nil),
		MarketUC:             usecase.NewMarketUseCase(r.Markets, nil),
		ScheduleUC:           usecase.NewScheduleUseCase(r.Schedules, r.Users, r.Markets, c.Policy, nil),
		RequestUC:            usecase.NewRequestUseCase(r.Requests, r.Users, r.Notifications, c.Policy, nil),
		WarningUC:            usecase.NewWarningUseCase(r.Warnings, r.Users, r.Markets, r.Notifications, c.Policy, nil),
		CashUC:               usecase.NewCashRegisterUseCase(r.CashRegister, r.Notifications, c.Policy, nil),
		ContractUC:           usecase.NewContractUseCase(r.Contracts, r.Users, r.Notifications, c.Policy, nil),
		SOSUC:                usecase.NewSOSUseCase(r.SOS, r.Users, r.Notifications, c.Policy, nil),
		NotificationUC:       usecase.NewNotificationUseCase(r.Notifications),
		SalaryUC:             usecase.NewSalaryUseCase(r.Salary, r.Users, r.Companies, r.Notifications, pdf.NewStatementRenderer(), c.Policy, nil),
		Sessions:             c.Sessions,
		Users:                r.Users,
		Model:                c.Model,
		Logger:               c.Log,
		LoginRateLimitPerMin: c.Config.HTTP.LoginRateLimitPerMin,
	}
}

// Close libera conexiones en orden inverso de apertura.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
