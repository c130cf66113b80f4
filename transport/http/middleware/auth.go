package middleware

import (
	"net/http"
	"strings"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	authService "hotel/internal/domains/auth/service"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Auth resolves the caller from a bearer token or the session cookie.
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role checks the caller's role against permissions.json.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	auth       authService.Auth
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(auth authService.Auth, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		auth:       auth,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth attaches the session when the request carries a usable token. Routes
// marked skip, and paths no route matches, go through either way. Everything
// else without a session gets a 401 for API calls and a redirect to the
// login page for browser pages.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		pattern, permission := m.lookup(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       pattern,
			"http.method":     request.Method,
		})

		authenticated := false

		if token := m.extractToken(request); token != "" {
			session, err := m.auth.Authenticate(ctx, token)
			if err == nil {
				ctx = session.WithContext(ctx)
				authenticated = true
			}
		}

		scope.End()

		if !authenticated && pattern != "" && !permission.Skip {
			unauthorized(writer, request)

			return
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC must run after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		pattern, permission := m.lookup(request)
		if pattern == "" || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		session, _ := dto.SessionFromContext(request.Context())

		if !permission.Allows(session.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     session.Role,
				"allowed_roles": permission.Roles,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// lookup resolves the route pattern the request will hit. An empty pattern
// means no route matches.
func (m *authRoleImpl) lookup(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return "", permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if pattern == "" || m.permission == nil {
		return pattern, permissions.Permission{}
	}

	if m.permission.Skip {
		return pattern, permissions.Permission{Path: pattern, Method: request.Method, Skip: true}
	}

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

func (m *authRoleImpl) extractToken(request *http.Request) string {
	if header := request.Header.Get(constant.RequestHeaderAuthorization); header != "" {
		if token, err := jwt.ExtractTokenFromHeader(header); err == nil {
			return token
		}
	}

	cookie, err := request.Cookie(m.cfg.JWT.CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func unauthorized(writer http.ResponseWriter, request *http.Request) {
	if IsAPIRequest(request) {
		response.WithError(writer, failure.Unauthorized(dto.MessageUnauthorized))

		return
	}

	http.Redirect(writer, request, constant.PathLogin, http.StatusFound)
}

func IsAPIRequest(request *http.Request) bool {
	return strings.HasPrefix(request.URL.Path, constant.PathAPIPrefix)
}
