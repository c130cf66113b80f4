package service

import (
	"context"
	"errors"
	"math"
	"time"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, session dto.Session) error
	Me(ctx context.Context) (dto.MeResponse, error)
	Authenticate(ctx context.Context, token string) (dto.Session, error)
	EnsureAdmin(ctx context.Context) error
}

type serviceImpl struct {
	userRepo userRepo.User
	jwt      jwt.JWT
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(userRepo userRepo.User, jwt jwt.JWT, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo: userRepo,
		jwt:      jwt,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req.Normalize()

	if req.Username == "" || req.Password == "" {
		return res, failure.Unauthorized(dto.MessageInvalidCredentials) //nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, userRepo.FilterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("failed to load user")

		return res, failure.Internal(dto.MessageLoginFailed, err) //nolint:wrapcheck
	}

	if user.ID == 0 {
		password.Burn(req.Password)
		log.Warn().Str("username", req.Username).Msg("Login attempt for unknown user")

		return res, failure.Unauthorized(dto.MessageInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			log.Error().Err(err).Int64("id", user.ID).Msg("stored password hash is unreadable")
		}

		log.Warn().Str("username", req.Username).Msg("Login attempt with wrong password")

		return res, failure.Unauthorized(dto.MessageInvalidCredentials) //nolint:wrapcheck
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Int64("id", user.ID).Msg("failed to sign token")

		return res, failure.Internal(dto.MessageLoginFailed, err) //nolint:wrapcheck
	}

	now := timezone.Now()

	_, err = s.userRepo.Update(ctx, map[string]any{
		userModel.FieldLastLogin: now,
		constant.FieldModifiedAt: now,
	}, shared.FilterByID(user.ID))
	if err != nil {
		log.Warn().Err(err).Int64("id", user.ID).Msg("failed to record last login")
	}

	log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("User signed in")

	res.Message = dto.MessageLoginSuccess
	res.Token = token.Value
	res.ExpiresAt = token.ExpiresAt
	res.User.FromModel(user)

	return res, nil
}

// Logout revokes the session's token until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context, session dto.Session) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if session.TokenID == "" {
		return nil
	}

	remaining := int(math.Ceil(time.Until(session.ExpiresAt).Seconds()))
	if remaining <= 0 {
		return nil
	}

	if err = s.cache.Save(ctx, revokedKey(session.TokenID), true, remaining); err != nil {
		log.Error().Err(err).Str("token_id", session.TokenID).Msg("failed to revoke token")

		return failure.Internal(dto.MessageLogoutFailed, err) //nolint:wrapcheck
	}

	log.Info().Int64("id", session.UserID).Msg("User signed out")

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (dto.MeResponse, error) {
	session, ok := dto.SessionFromContext(ctx)
	if !ok {
		return dto.MeResponse{}, failure.Unauthorized(dto.MessageUnauthorized) //nolint:wrapcheck
	}

	return dto.MeResponse{User: session.Info()}, nil
}

// Authenticate turns a raw token into a session. Bad, expired and revoked
// tokens all come back as 401.
func (s *serviceImpl) Authenticate(ctx context.Context, token string) (session dto.Session, err error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return session, failure.Unauthorized(dto.MessageUnauthorized) //nolint:wrapcheck
	}

	userID, err := claims.UserID()
	if err != nil {
		return session, failure.Unauthorized(dto.MessageUnauthorized) //nolint:wrapcheck
	}

	revoked, err := s.cache.Exists(ctx, revokedKey(claims.ID))
	if err != nil {
		log.Error().Err(err).Str("token_id", claims.ID).Msg("failed to check token revocation")

		return session, failure.Unauthorized(dto.MessageUnauthorized) //nolint:wrapcheck
	}

	if revoked {
		return session, failure.Unauthorized(dto.MessageUnauthorized) //nolint:wrapcheck
	}

	session = dto.Session{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}

	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// EnsureAdmin seeds the configured admin account when no user holds that
// username yet. An existing account is left untouched, password included.
func (s *serviceImpl) EnsureAdmin(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.EnsureAdmin")
	defer scope.End()
	defer scope.TraceIfError(&err)

	username := s.cfg.Auth.Username
	if username == "" || s.cfg.Auth.Password == "" {
		log.Warn().Msg("No admin credentials configured, skipping admin seed")

		return nil
	}

	exist, err := s.userRepo.Exist(ctx, userRepo.FilterByUsername(username))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if exist {
		return nil
	}

	hashed, err := password.Hash(s.cfg.Auth.Password)
	if err != nil {
		return err //nolint:wrapcheck
	}

	now := timezone.Now()

	id, err := s.userRepo.Insert(ctx, userModel.User{
		Username: username,
		Password: hashed,
		Role:     constant.RoleAdmin,
		Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Int64("id", id).Str("username", username).Msg("Seeded admin account")

	return nil
}

func revokedKey(tokenID string) string {
	return constant.CacheKeyRevokedToken + tokenID
}
