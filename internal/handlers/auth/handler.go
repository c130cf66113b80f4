package auth

import (
	"net/http"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Auth
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/logout", handler.Logout)
		routerGroup.Get("/me", handler.Me)
	})
}

// Login signs a user in.
// @Summary Sign in
// @Description Returns a token and also sets it as an HttpOnly session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	http.SetCookie(w, handler.cookie(res.Token, res.ExpiresAt))

	response.WithBody(w, http.StatusOK, res)
}

// Logout ends the session.
// @Summary Sign out
// @Description Clears the session cookie and revokes the presented token.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /api/auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	http.SetCookie(w, handler.cookie("", time.Time{}))

	if session, ok := dto.SessionFromContext(ctx); ok {
		if err := handler.service.Logout(ctx, session); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, dto.MessageLogoutSuccess)
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} response.Error
// @Router /api/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	res, err := handler.service.Me(r.Context())
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}

// cookie builds the session cookie. An empty value deletes it.
func (handler *Handler) cookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     handler.cfg.JWT.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   handler.cfg.Server.Env == constant.ServerEnvProduction,
	}

	if value == "" {
		cookie.MaxAge = -1

		return cookie
	}

	cookie.Expires = expires
	cookie.MaxAge = max(0, int(time.Until(expires).Seconds()))

	return cookie
}
