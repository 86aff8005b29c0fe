package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/staffhub-api/internal/application/auth"
	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/metrics"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string

	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	MarketUC       *usecase.MarketUseCase
	ScheduleUC     *usecase.ScheduleUseCase
	RequestUC      *usecase.RequestUseCase
	WarningUC      *usecase.WarningUseCase
	CashUC         *usecase.CashRegisterUseCase
	ContractUC     *usecase.ContractUseCase
	SOSUC          *usecase.SOSUseCase
	NotificationUC *usecase.NotificationUseCase
	SalaryUC       *usecase.SalaryUseCase

	Sessions SessionResolver
	Users    UserLoader
	Model    *rbac.Model
	Logger   *logger.Logger

	// LoginRateLimitPerMin 0 desactiva el limitador de login/registro.
	LoginRateLimitPerMin int
}

// route una fila de la tabla de rutas: método, patrón, permiso requerido y handler.
type route struct {
	method  string
	path    string
	access  access
	handler fiber.Handler
}

// access permiso de una ruta. Sin grupo ni roles la ruta es pública.
type access struct {
	group   rbac.Group
	roles   rbac.RoleSet // lista literal, se usa en vez de group
	label   string       // etiqueta de métricas para roles literales
	limited bool         // aplica el limitador por IP
}

var (
	publicLimited = access{limited: true}
	authenticated = access{group: rbac.GroupAuthenticated}
	teamMgmt      = access{group: rbac.GroupTeamManagement}
	userMgmt      = access{group: rbac.GroupUserManagement}
	executive     = access{group: rbac.GroupExecutive}
	financial     = access{group: rbac.GroupFinancial}
	companyAdmins = access{group: rbac.GroupCompanyAdmins}
)

func (a access) public() bool { return a.group == "" && a.roles == nil }

// NewApp construye la aplicación Fiber con middleware global, /health, /metrics y la API.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	log := deps.Logger.Component("http")

	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: fiberErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	Router(app, deps)
	return app
}

// Router registra las rutas de la API a partir de la tabla declarativa.
func Router(app fiber.Router, deps RouterDeps) {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	er := errorResponder{log: deps.Logger.Component("http")}
	gate := AuthMiddleware(deps.Sessions, deps.Users, deps.Logger.Component("auth-gate"))

	var limit fiber.Handler
	if deps.LoginRateLimitPerMin > 0 {
		limit = limiter.New(limiter.Config{
			Max:        deps.LoginRateLimitPerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "Too many requests"})
			},
		})
	}

	for _, r := range routes(deps, er) {
		handlers := make([]fiber.Handler, 0, 3)
		switch {
		case r.access.public():
			if r.access.limited && limit != nil {
				handlers = append(handlers, limit)
			}
		case r.access.roles != nil:
			handlers = append(handlers, gate, RequireAnyRole(r.access.label, r.access.roles))
		default:
			handlers = append(handlers, gate, RequireRole(deps.Model, r.access.group))
		}
		handlers = append(handlers, r.handler)
		app.Add(r.method, r.path, handlers...)
	}
}

// routes tabla única endpoint -> permiso. Las rutas estáticas (/me, /current) van antes que /:id.
func routes(deps RouterDeps, er errorResponder) []route {
	authH := NewAuthHandler(deps.AuthUC, er)
	userH := NewUserHandler(deps.UserUC, er)
	companyH := NewCompanyHandler(deps.CompanyUC, deps.MarketUC, er)
	scheduleH := NewScheduleHandler(deps.ScheduleUC, er)
	requestH := NewRequestHandler(deps.RequestUC, er)
	resH := NewResourceHandler(ResourceUseCases{
		Warnings:      deps.WarningUC,
		Cash:          deps.CashUC,
		Contracts:     deps.ContractUC,
		SOS:           deps.SOSUC,
		Notifications: deps.NotificationUC,
	}, er)
	salaryH := NewSalaryHandler(deps.SalaryUC, er)

	salaryViewers := access{
		roles: deps.Model.Roles(rbac.GroupFinancial).Union(deps.Model.Roles(rbac.GroupFieldManagers)),
		label: "SALARY_VIEWERS",
	}

	const (
		get   = fiber.MethodGet
		post  = fiber.MethodPost
		put   = fiber.MethodPut
		patch = fiber.MethodPatch
		del   = fiber.MethodDelete
	)

	return []route{
		// Auth
		{post, "/api/auth/register-company", publicLimited, authH.RegisterCompany},
		{post, "/api/register-company", publicLimited, authH.RegisterCompany},
		{post, "/api/auth/register", publicLimited, authH.Register},
		{post, "/api/auth/login", publicLimited, authH.Login},
		{post, "/api/auth/logout", authenticated, authH.Logout},
		{get, "/api/auth/me", authenticated, authH.Me},

		// Perfil
		{get, "/api/users/me", authenticated, userH.Me},
		{put, "/api/users/me", authenticated, userH.UpdateMe},
		{put, "/api/profile/password", authenticated, authH.ChangePassword},
		{put, "/api/profile/2fa", authenticated, userH.SetTwoFactor},

		// Usuarios y equipo
		{get, "/api/users", teamMgmt, userH.List},
		{get, "/api/users/:id", authenticated, userH.Get},
		{put, "/api/users/:id", userMgmt, userH.Update},
		{del, "/api/users/:id", userMgmt, userH.Delete},
		{get, "/api/admin/users", userMgmt, userH.List},
		{post, "/api/admin/users", userMgmt, userH.Create},
		{get, "/api/staff", teamMgmt, userH.ListStaff},
		{patch, "/api/staff/:id/status", teamMgmt, userH.UpdateStanding},
		{get, "/api/manager/team", teamMgmt, userH.Team},
		{get, "/api/manager/requests", teamMgmt, requestH.Actionable},

		// Empresa, markets y ajustes
		{get, "/api/companies", executive, companyH.Get},
		{put, "/api/companies", companyAdmins, companyH.Update},
		{get, "/api/markets", authenticated, companyH.ListMarkets},
		{post, "/api/markets", userMgmt, companyH.CreateMarket},
		{put, "/api/markets/:id", userMgmt, companyH.UpdateMarket},
		{del, "/api/markets/:id", userMgmt, companyH.DeleteMarket},
		{get, "/api/admin/markets", executive, companyH.ListMarketsWithCounts},
		{get, "/api/admin/settings", companyAdmins, companyH.Settings},
		{put, "/api/admin/settings", companyAdmins, companyH.UpdateSettings},
		{get, "/api/admin-dashboard", executive, companyH.Dashboard},
		{get, "/api/admin/company-stats", executive, companyH.Stats},

		// Turnos
		{get, "/api/schedules", authenticated, scheduleH.List},
		{post, "/api/schedules", teamMgmt, scheduleH.Create},
		{del, "/api/schedules/:id", teamMgmt, scheduleH.Delete},

		// Solicitudes
		{get, "/api/requests", authenticated, requestH.List},
		{post, "/api/requests", authenticated, requestH.Create},
		{get, "/api/requests/:id", authenticated, requestH.Get},
		{patch, "/api/requests/:id/status", teamMgmt, requestH.UpdateStatus},
		{put, "/api/requests/:id/status", teamMgmt, requestH.UpdateStatus},
		{del, "/api/requests/:id", companyAdmins, requestH.Delete},

		// Amonestaciones
		{get, "/api/warnings", authenticated, resH.ListWarnings},
		{post, "/api/warnings", teamMgmt, resH.CreateWarning},
		{patch, "/api/warnings/:id/resolve", teamMgmt, resH.ResolveWarning},

		// Caja
		{get, "/api/cash-register", authenticated, resH.ListCash},
		{post, "/api/cash-register", authenticated, resH.CreateCash},

		// Contratos
		{get, "/api/contracts", authenticated, resH.ListContracts},
		{get, "/api/contracts/current", authenticated, resH.CurrentContract},
		{post, "/api/contracts", userMgmt, resH.CreateContract},
		{put, "/api/contracts/:id", userMgmt, resH.UpdateContract},
		{post, "/api/contracts/:id/renewal", authenticated, resH.RequestRenewal},

		// SOS
		{post, "/api/sos", authenticated, resH.CreateSOS},
		{get, "/api/sos", authenticated, resH.ListSOS},
		{patch, "/api/sos/:id/resolve", teamMgmt, resH.ResolveSOS},

		// Notificaciones
		{get, "/api/notifications", authenticated, resH.ListNotifications},
		{patch, "/api/notifications/:id/read", authenticated, resH.MarkNotificationRead},

		// Salario
		{get, "/api/salary/me", authenticated, salaryH.Me},
		{get, "/api/salary/me/statement", authenticated, salaryH.Statement},
		{get, "/api/salary/staff/:id", salaryViewers, salaryH.ForStaff},
		{post, "/api/salary/payments", financial, salaryH.RecordPayment},
	}
}
