package http

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
	"github.com/jhoicas/staffhub-api/internal/metrics"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

// Locals keys para el usuario autenticado y su token en Fiber.
const (
	LocalUser  = "user"
	LocalToken = "token"
)

const bearerPrefix = "Bearer "

// SessionResolver lo cumple *auth.SessionManager.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// UserLoader carga el usuario dueño de la sesión.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer token opaco, carga el usuario y lo deja en c.Locals.
// Solo una sesión inexistente o vencida es SESSION_EXPIRED; un fallo del store corta con 500.
func AuthMiddleware(sessions SessionResolver, users UserLoader, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	er := errorResponder{log: log}
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		// Esquema sensible a mayúsculas y un único espacio.
		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c)
		}
		token := header[len(bearerPrefix):]
		if token == "" || strings.ContainsAny(token, " \t") {
			return unauthorized(c)
		}

		userID, err := sessions.Resolve(c.UserContext(), token)
		if errors.Is(err, domain.ErrSessionExpired) {
			return sessionExpired(c)
		}
		if err != nil {
			return er.respond(c, fmt.Errorf("resolver sesión: %w", err))
		}
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return er.respond(c, fmt.Errorf("cargar usuario %s de la sesión: %w", userID, err))
		}
		if user == nil {
			return unauthorized(c)
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// RequireRole permite el paso solo a roles del grupo indicado. Debe ir después de AuthMiddleware.
func RequireRole(model *rbac.Model, group rbac.Group) fiber.Handler {
	return requireRoles(string(group), func(r rbac.Role) bool { return model.InGroup(r, group) })
}

// RequireAnyRole guard con una lista literal de roles.
func RequireAnyRole(label string, roles rbac.RoleSet) fiber.Handler {
	return requireRoles(label, roles.Has)
}

func requireRoles(label string, allowed func(rbac.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return unauthorized(c)
		}
		ok := allowed(user.Role)
		metrics.RecordAuthorizationDecision(label, ok)
		if !ok {
			return forbidden(c)
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetActor devuelve el actor para las decisiones de política.
func GetActor(c *fiber.Ctx) policy.Actor {
	if u := GetUser(c); u != nil {
		return policy.ActorFromUser(u)
	}
	return policy.Actor{}
}

// GetToken devuelve el token de la petición actual.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

// GetUserID devuelve el id del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.ID
	}
	return ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Unauthorized"})
}

func sessionExpired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "Session expired"})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Forbidden"})
}
