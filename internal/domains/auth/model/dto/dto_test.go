package dto_test

import (
	"context"
	"testing"
	"time"

	"hotel/internal/domains/auth/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RoundTripsThroughContext(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := dto.Session{UserID: 7, Username: "frontdesk", Role: "staff", TokenID: "jti-1", ExpiresAt: expiry}

	got, ok := dto.SessionFromContext(session.WithContext(context.Background()))
	require.True(t, ok)
	assert.Equal(t, session, got)
	assert.Equal(t, dto.UserInfo{ID: 7, Username: "frontdesk", Role: "staff"}, got.Info())
}

func TestSessionFromContext_Anonymous(t *testing.T) {
	_, ok := dto.SessionFromContext(context.Background())
	assert.False(t, ok)
}

func TestLoginRequest_Normalize(t *testing.T) {
	req := dto.LoginRequest{Username: "  admin ", Password: " admin123 "}
	req.Normalize()

	assert.Equal(t, "admin", req.Username)
	assert.Equal(t, " admin123 ", req.Password)
}
