package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/staffhub-api/internal/application/auth"
	"github.com/jhoicas/staffhub-api/internal/application/usecase"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/memory"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/staffhub-api/internal/interfaces/http"
	"github.com/jhoicas/staffhub-api/pkg/logger"
	"github.com/jhoicas/staffhub-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno completo sobre adaptadores en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock reloj manual compartido por auth y sesiones.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	app   *fiber.App
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	repos := memory.NewRepositories(memory.NewStore())
	sessions := auth.NewSessionManager(memory.NewSessionStore(), 7*24*time.Hour, clock.Now)
	hasher := password.NewBcrypt(bcrypt.MinCost)
	model := rbac.NewHierarchyModel()
	pol := policy.New(model, policy.Options{UnassignedManagersSeeCompany: true})
	now := usecase.Clock(clock.Now)

	authUC, err := auth.NewAuthUseCase(auth.Deps{
		Users:     repos.Users,
		Companies: repos.Companies,
		Markets:   repos.Markets,
		Contracts: repos.Contracts,
		Tx:        repos.Tx,
		Sessions:  sessions,
		Hasher:    hasher,
		Model:     model,
		Lockout:   policy.DefaultLockout(),
		Logger:    logger.Nop(),
		Now:       clock.Now,
	})
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName:        "staffhub-test",
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(repos.Users, repos.Companies, repos.Markets, repos.Schedules, sessions, hasher, pol, now),
		CompanyUC:      usecase.NewCompanyUseCase(repos.Companies, repos.Markets, repos.Stats, repos.SOS, now),
		MarketUC:       usecase.NewMarketUseCase(repos.Markets, now),
		ScheduleUC:     usecase.NewScheduleUseCase(repos.Schedules, repos.Users, repos.Markets, pol, now),
		RequestUC:      usecase.NewRequestUseCase(repos.Requests, repos.Users, repos.Notifications, pol, now),
		WarningUC:      usecase.NewWarningUseCase(repos.Warnings, repos.Users, repos.Markets, repos.Notifications, pol, now),
		CashUC:         usecase.NewCashRegisterUseCase(repos.CashRegister, repos.Notifications, pol, now),
		ContractUC:     usecase.NewContractUseCase(repos.Contracts, repos.Users, repos.Notifications, pol, now),
		SOSUC:          usecase.NewSOSUseCase(repos.SOS, repos.Users, repos.Notifications, pol, now),
		NotificationUC: usecase.NewNotificationUseCase(repos.Notifications),
		SalaryUC:       usecase.NewSalaryUseCase(repos.Salary, repos.Users, repos.Companies, repos.Notifications, pdf.NewStatementRenderer(), pol, now),
		Sessions:       sessions,
		Users:          repos.Users,
		Model:          model,
		Logger:         logger.Nop(),
	})
	return &testEnv{app: app, clock: clock}
}

// call lanza una petición JSON y decodifica la respuesta en out (si no es nil).
func (e *testEnv) call(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "%s %s → %d: %s", method, path, resp.StatusCode, raw)
	}
	return resp
}

type authOut struct {
	Token string `json:"token"`
	User  struct {
		ID        string  `json:"id"`
		CompanyID string  `json:"companyId"`
		Role      string  `json:"role"`
		MarketID  *string `json:"marketId"`
	} `json:"user"`
}

type idOut struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// tenant empresa de prueba con un owner, un market, un manager de ese market y dos staff.
type tenant struct {
	code         string
	ownerToken   string
	marketID     string
	managerToken string
	managerID    string
	staffToken   string
	staffID      string
	otherToken   string
	otherID      string
}

func (e *testEnv) seedTenant(t *testing.T, code string) tenant {
	t.Helper()
	var owner authOut
	resp := e.call(t, http.MethodPost, "/api/auth/register-company", "", map[string]any{
		"companyName": code + " Corp",
		"companyCode": code,
		"ownerName":   "Owner " + code,
		"ownerEmail":  "owner@" + strings.ToLower(code) + ".com",
		"password":    "secret123",
	}, &owner)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var market idOut
	resp = e.call(t, http.MethodPost, "/api/markets", owner.Token, map[string]any{"name": "Centro"}, &market)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	tn := tenant{code: code, ownerToken: owner.Token, marketID: market.ID}
	tn.managerID, tn.managerToken = e.createUser(t, tn, "manager@"+strings.ToLower(code)+".com", "manager", &market.ID)
	tn.staffID, tn.staffToken = e.createUser(t, tn, "ana@"+strings.ToLower(code)+".com", "staff", &market.ID)
	tn.otherID, tn.otherToken = e.createUser(t, tn, "luis@"+strings.ToLower(code)+".com", "staff", nil)
	return tn
}

// createUser da de alta un usuario como owner y abre sesión con él.
func (e *testEnv) createUser(t *testing.T, tn tenant, email, role string, marketID *string) (string, string) {
	t.Helper()
	body := map[string]any{"email": email, "password": "secret123", "name": email, "role": role}
	if marketID != nil {
		body["marketId"] = *marketID
	}
	var created idOut
	resp := e.call(t, http.MethodPost, "/api/admin/users", tn.ownerToken, body, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	return created.ID, e.login(t, email, "secret123", tn.code)
}

func (e *testEnv) login(t *testing.T, email, pass, code string) string {
	t.Helper()
	var out authOut
	resp := e.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": pass, "companyCode": code,
	}, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, out.Token, 64)
	return out.Token
}

func (e *testEnv) code(t *testing.T, resp *http.Response) string {
	t.Helper()
	return errorCode(t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginNormalizaEmailYCodigo(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "ACME")

	token := env.login(t, "Owner@ACME.com", "secret123", "acme")

	var raw map[string]json.RawMessage
	resp := env.call(t, http.MethodGet, "/api/auth/me", token, nil, &raw)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, raw, "user")
	assert.Len(t, raw, 1, "la respuesta solo envuelve al usuario")

	var user map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["user"], &user))
	assert.JSONEq(t, `"owner"`, string(user["role"]))
	assert.JSONEq(t, `null`, string(user["contract"]))
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	var company struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(user["company"], &company))
	assert.Equal(t, "ACME", company.Code)
}

// Empresa desconocida, usuario desconocido y contraseña incorrecta → mismo 401.
func TestAPI_LoginErroresUniformes(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "ACME")

	cases := map[string]map[string]any{
		"empresa desconocida": {"email": "owner@acme.com", "password": "secret123", "companyCode": "NOPE"},
		"usuario desconocido": {"email": "nadie@acme.com", "password": "secret123", "companyCode": "ACME"},
		"password incorrecta": {"email": "owner@acme.com", "password": "mala", "companyCode": "ACME"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var out struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			resp := env.call(t, http.MethodPost, "/api/auth/login", "", body, &out)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Invalid credentials", out.Message)
		})
	}
}

func TestAPI_BloqueoTrasCincoFallos(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "ACME")
	bad := map[string]any{"email": "owner@acme.com", "password": "mala", "companyCode": "ACME"}
	good := map[string]any{"email": "owner@acme.com", "password": "secret123", "companyCode": "ACME"}

	for i := 1; i <= 4; i++ {
		resp := env.call(t, http.MethodPost, "/api/auth/login", "", bad, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "intento %d", i)
	}

	resp := env.call(t, http.MethodPost, "/api/auth/login", "", bad, nil)
	assert.Equal(t, fiber.StatusLocked, resp.StatusCode)
	assert.Equal(t, "900", resp.Header.Get("Retry-After"))

	// Bloqueada: ni con la contraseña correcta.
	env.clock.Advance(5 * time.Minute)
	resp = env.call(t, http.MethodPost, "/api/auth/login", "", good, nil)
	assert.Equal(t, fiber.StatusLocked, resp.StatusCode)
	assert.Equal(t, "600", resp.Header.Get("Retry-After"))

	env.clock.Advance(10*time.Minute + time.Second)
	env.login(t, "owner@acme.com", "secret123", "ACME")
}

func TestAPI_LogoutInvalidaSoloEseToken(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")
	second := env.login(t, "owner@acme.com", "secret123", "ACME")

	resp := env.call(t, http.MethodPost, "/api/auth/logout", tn.ownerToken, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/auth/me", tn.ownerToken, nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", env.code(t, resp))

	resp = env.call(t, http.MethodGet, "/api/auth/me", second, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPI_SesionExpiraALosSieteDias(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	env.clock.Advance(7*24*time.Hour + time.Second)
	resp := env.call(t, http.MethodGet, "/api/auth/me", tn.ownerToken, nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", env.code(t, resp))
}

func TestAPI_RegistroCodigoDuplicado(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "ACME")

	resp := env.call(t, http.MethodPost, "/api/register-company", "", map[string]any{
		"companyName": "Otra", "companyCode": "acme", "ownerName": "X",
		"ownerEmail": "x@otra.com", "password": "secret123",
	}, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAPI_RegistroEmpleadoComoStaff(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "ACME")

	var out authOut
	resp := env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "Nuevo@Acme.com", "password": "secret123", "name": "Nuevo", "companyCode": "acme",
	}, &out)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "staff", out.User.Role)

	resp = env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "nuevo@acme.com", "password": "secret123", "name": "Otro", "companyCode": "ACME",
	}, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", env.code(t, resp))

	resp = env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "x@acme.com", "password": "secret123", "name": "X", "companyCode": "NOPE",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AislamientoEntreEmpresas(t *testing.T) {
	env := newTestEnv(t)
	acme := env.seedTenant(t, "ACME")
	globex := env.seedTenant(t, "GLOBEX")

	resp := env.call(t, http.MethodGet, "/api/users/"+globex.staffID, acme.ownerToken, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var users []idOut
	resp = env.call(t, http.MethodGet, "/api/users", acme.ownerToken, nil, &users)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, users, 4)
	for _, u := range users {
		assert.NotEqual(t, globex.staffID, u.ID)
	}
}

// seedResources crea una fila de cada recurso listable en la empresa y devuelve sus ids por ruta.
func (e *testEnv) seedResources(t *testing.T, tn tenant) map[string]string {
	t.Helper()
	create := func(path, token string, body map[string]any) string {
		t.Helper()
		var out idOut
		resp := e.call(t, http.MethodPost, path, token, body, &out)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, path)
		require.NotEmpty(t, out.ID, path)
		return out.ID
	}
	return map[string]string{
		"/api/schedules": create("/api/schedules", tn.ownerToken, map[string]any{
			"userId": tn.staffID, "date": "2026-03-02", "startTime": "08:00", "endTime": "16:00",
		}),
		"/api/requests": create("/api/requests", tn.staffToken, map[string]any{"type": "request", "subject": "Vacaciones " + tn.code}),
		"/api/warnings": create("/api/warnings", tn.managerToken, map[string]any{"userId": tn.staffID, "reason": "Retraso " + tn.code}),
		"/api/cash-register": create("/api/cash-register", tn.staffToken, map[string]any{
			"shiftDate": "2026-03-02", "status": "exact", "amount": "0",
		}),
		"/api/contracts": create("/api/contracts", tn.ownerToken, map[string]any{
			"userId": tn.staffID, "startDate": "2026-01-01", "endDate": "2026-12-31",
		}),
		"/api/sos": create("/api/sos", tn.staffToken, map[string]any{"type": "security"}),
	}
}

// Ningún listado devuelve filas de otra empresa, ni siquiera a un ejecutivo.
func TestAPI_AislamientoEntreEmpresas_TodosLosRecursos(t *testing.T) {
	env := newTestEnv(t)
	acme := env.seedTenant(t, "ACME")
	globex := env.seedTenant(t, "GLOBEX")
	mine := env.seedResources(t, acme)
	theirs := env.seedResources(t, globex)

	for path, foreignID := range theirs {
		t.Run(path, func(t *testing.T) {
			var list []idOut
			resp := env.call(t, http.MethodGet, path, acme.ownerToken, nil, &list)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			ids := make([]string, 0, len(list))
			for _, row := range list {
				ids = append(ids, row.ID)
			}
			assert.Contains(t, ids, mine[path])
			assert.NotContains(t, ids, foreignID)
		})
	}
}

func TestAPI_StaffSoloVeSusSolicitudes(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	var mine, theirs idOut
	env.call(t, http.MethodPost, "/api/requests", tn.staffToken, map[string]any{"type": "request", "subject": "Vacaciones"}, &mine)
	env.call(t, http.MethodPost, "/api/requests", tn.otherToken, map[string]any{"type": "request", "subject": "Cambio de turno"}, &theirs)

	var list []idOut
	resp := env.call(t, http.MethodGet, "/api/requests", tn.staffToken, nil, &list)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	resp = env.call(t, http.MethodGet, "/api/requests/"+theirs.ID, tn.staffToken, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// El dueño de una fila creada es siempre el llamador, aunque el cuerpo diga otra cosa.
func TestAPI_DueñoForzado(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	var created idOut
	resp := env.call(t, http.MethodPost, "/api/requests", tn.staffToken, map[string]any{
		"userId": tn.otherID, "type": "request", "subject": "Permiso",
	}, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, tn.staffID, created.UserID)

	resp = env.call(t, http.MethodPost, "/api/cash-register", tn.staffToken, map[string]any{
		"userId": tn.otherID, "shiftDate": "2026-03-02", "status": "exact", "amount": "0",
	}, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, tn.staffID, created.UserID)
}

func TestAPI_ManagerVeSoloSuMarket(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	for _, userID := range []string{tn.staffID, tn.otherID} {
		resp := env.call(t, http.MethodPost, "/api/schedules", tn.ownerToken, map[string]any{
			"userId": userID, "date": "2026-03-02", "startTime": "08:00", "endTime": "16:00",
		}, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var list []idOut
	resp := env.call(t, http.MethodGet, "/api/schedules", tn.managerToken, nil, &list)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, tn.staffID, list[0].UserID)

	resp = env.call(t, http.MethodGet, "/api/schedules", tn.ownerToken, nil, &list)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, list, 2)

	// Fuera de su market no puede asignar turnos.
	resp = env.call(t, http.MethodPost, "/api/schedules", tn.managerToken, map[string]any{
		"userId": tn.otherID, "date": "2026-03-03", "startTime": "08:00", "endTime": "16:00",
	}, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revisión de solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_NadieApruebaLoPropio(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	var own idOut
	env.call(t, http.MethodPost, "/api/requests", tn.managerToken, map[string]any{"type": "request", "subject": "Día libre"}, &own)
	resp := env.call(t, http.MethodPatch, "/api/requests/"+own.ID+"/status", tn.managerToken, map[string]any{"status": "approved"}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var actionable []idOut
	resp = env.call(t, http.MethodGet, "/api/manager/requests", tn.managerToken, nil, &actionable)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, actionable)

	var staffReq, reviewed idOut
	env.call(t, http.MethodPost, "/api/requests", tn.staffToken, map[string]any{"type": "request", "subject": "Vacaciones"}, &staffReq)
	resp = env.call(t, http.MethodPatch, "/api/requests/"+staffReq.ID+"/status", tn.managerToken, map[string]any{"status": "approved"}, &reviewed)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", reviewed.Status)

	// Ya no está pendiente.
	resp = env.call(t, http.MethodPut, "/api/requests/"+staffReq.ID+"/status", tn.managerToken, map[string]any{"status": "declined"}, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guards y validación de cuerpo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_GuardsDeRuta(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	resp := env.call(t, http.MethodGet, "/api/admin-dashboard", tn.managerToken, nil, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/staff", tn.staffToken, nil, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/admin-dashboard", tn.ownerToken, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/users", "", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CampoDesconocidoRechazado(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	resp := env.call(t, http.MethodPut, "/api/users/me", tn.staffToken, map[string]any{"name": "Ana", "role": "owner"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.call(t, http.MethodPut, "/api/users/me", tn.staffToken, `{"name": "Ana"} {}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var me struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	resp = env.call(t, http.MethodPut, "/api/users/me", tn.staffToken, map[string]any{"name": "Ana"}, &me)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana", me.Name)
	assert.Equal(t, "staff", me.Role)
}

func TestAPI_ValidacionInformaCampos(t *testing.T) {
	env := newTestEnv(t)

	var out struct {
		Code   string `json:"code"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	resp := env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "no-es-email", "password": "x"}, &out)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)

	names := make([]string, 0, len(out.Fields))
	for _, f := range out.Fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"email", "companyCode"}, names)
}

// hr_admin no otorga roles de rango superior; manager no entra a gestión de usuarios.
func TestAPI_CreacionDeRolesRespetaJerarquia(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	_, hrToken := env.createUser(t, tn, "rrhh@acme.com", "hr_admin", nil)

	resp := env.call(t, http.MethodPost, "/api/admin/users", hrToken, map[string]any{
		"email": "jefe@acme.com", "password": "secret123", "name": "Jefe", "role": "admin",
	}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.call(t, http.MethodPost, "/api/admin/users", tn.managerToken, map[string]any{
		"email": "otro@acme.com", "password": "secret123", "name": "Otro", "role": "staff",
	}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAPI_Health(t *testing.T) {
	env := newTestEnv(t)

	resp := env.call(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salario
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario recién dado de alta (saldo 0) puede cobrar; el saldo queda negativo.
func TestAPI_PagoSalarioAUsuarioNuevo(t *testing.T) {
	env := newTestEnv(t)
	tn := env.seedTenant(t, "ACME")

	var paid struct {
		ID     string          `json:"id"`
		UserID string          `json:"userId"`
		Amount decimal.Decimal `json:"amount"`
	}
	resp := env.call(t, http.MethodPost, "/api/salary/payments", tn.ownerToken, map[string]any{
		"userId": tn.staffID, "amount": "100", "period": "2026-03",
	}, &paid)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, tn.staffID, paid.UserID)
	assert.True(t, paid.Amount.Equal(decimal.NewFromInt(100)))

	var summary struct {
		AccumulatedSalary decimal.Decimal `json:"accumulatedSalary"`
		Payments          []idOut         `json:"payments"`
	}
	resp = env.call(t, http.MethodGet, "/api/salary/me", tn.staffToken, nil, &summary)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, summary.AccumulatedSalary.Equal(decimal.NewFromInt(-100)), summary.AccumulatedSalary.String())
	require.Len(t, summary.Payments, 1)
	assert.Equal(t, paid.ID, summary.Payments[0].ID)

	// Staff no es FINANCIAL.
	resp = env.call(t, http.MethodPost, "/api/salary/payments", tn.staffToken, map[string]any{
		"userId": tn.staffID, "amount": "1", "period": "2026-03",
	}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
