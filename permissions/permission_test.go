package permissions_test

import (
	"net/http"
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedFile(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/api/auth/login", http.MethodPost).Skip)
	assert.True(t, data.FindPermissions("/api/health", http.MethodGet).Skip)

	users := data.FindPermissions("/api/users", http.MethodPost)
	assert.True(t, users.Allows("admin"))
	assert.False(t, users.Allows("staff"))
}

func TestFindPermissions_Unlisted(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/a","method":"GET","permissions":["admin"]}]}`))
	require.NoError(t, err)

	got := data.FindPermissions("/api/bookings", http.MethodGet)
	assert.False(t, got.Skip)
	assert.True(t, got.Allows("staff"))

	assert.False(t, data.FindPermissions("/a", http.MethodGet).Allows("staff"))
	assert.True(t, data.FindPermissions("/a", http.MethodPost).Allows("staff"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}
