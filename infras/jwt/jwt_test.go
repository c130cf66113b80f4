package jwt_test

import (
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/jwt"

	goJWT "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(expireMin int) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Hotel Booking App"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireMin = expireMin

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig(120))

	token, err := svc.GenerateToken(7, "admin", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token.ID)
	assert.WithinDuration(t, time.Now().Add(120*time.Minute), token.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, token.ID, claims.ID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestValidateToken_Failures(t *testing.T) {
	svc := jwt.New(newConfig(120))

	_, err := svc.ValidateToken("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	other, err := svc.GenerateToken(1, "a", "staff")
	require.NoError(t, err)

	wrongKey := newConfig(120)
	wrongKey.JWT.Secret = "another-secret"

	_, err = jwt.New(wrongKey).ValidateToken(other.Value)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired := goJWT.NewWithClaims(goJWT.SigningMethodHS256, jwt.Claims{
		Username: "a",
		RegisteredClaims: goJWT.RegisteredClaims{
			ID:        "x",
			Subject:   "1",
			ExpiresAt: goJWT.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	none := goJWT.NewWithClaims(goJWT.SigningMethodNone, jwt.Claims{RegisteredClaims: goJWT.RegisteredClaims{ID: "x"}})
	unsigned, err := none.SignedString(goJWT.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
