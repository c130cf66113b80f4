package dto

import (
	"context"
	"strings"
	"time"

	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
)

const (
	MessageLoginSuccess       = "Login successful"
	MessageLogoutSuccess      = "Logout successful"
	MessageInvalidCredentials = "Invalid username or password"
	MessageUnauthorized       = "Unauthorized"
	MessageLoginFailed        = "Failed to sign in"
	MessageLogoutFailed       = "Failed to sign out"
)

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin123"`
}

// Normalize trims the username only. Passwords are compared as sent.
func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type UserInfo struct {
	ID       int64  `json:"id"       example:"1"`
	Username string `json:"username" example:"admin"`
	Role     string `json:"role"     example:"admin"`
}

func (u *UserInfo) FromModel(user userModel.User) {
	u.ID = user.ID
	u.Username = user.Username
	u.Role = user.Role
}

type LoginResponse struct {
	Message   string    `json:"message"    example:"Login successful"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type MeResponse struct {
	User UserInfo `json:"user"`
}

// Session is the authenticated caller as the auth middleware found it.
type Session struct {
	UserID    int64
	Username  string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (s Session) Info() UserInfo {
	return UserInfo{ID: s.UserID, Username: s.Username, Role: s.Role}
}

func (s Session) WithContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, s.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, s.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, s.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, s.TokenID)

	return context.WithValue(ctx, constant.ContextKeyTokenExpiry, s.ExpiresAt)
}

// SessionFromContext reports false for anonymous requests.
func SessionFromContext(ctx context.Context) (Session, bool) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(int64)
	if !ok || userID == 0 {
		return Session{}, false
	}

	session := Session{UserID: userID}
	session.Username, _ = ctx.Value(constant.ContextKeyUsername).(string)
	session.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
	session.TokenID, _ = ctx.Value(constant.ContextKeyTokenID).(string)
	session.ExpiresAt, _ = ctx.Value(constant.ContextKeyTokenExpiry).(time.Time)

	return session, true
}
