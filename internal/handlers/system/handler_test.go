package system_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/internal/handlers/system"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(handler system.Handler, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(system.NewWithPinger(pinger{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())

	rec = serve(system.NewWithPinger(pinger{err: errors.New("database is closed")}), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"SERVER UNHEALTHY"}`, rec.Body.String())
}

func TestProjectInfo(t *testing.T) {
	rec := serve(system.NewWithPinger(pinger{}), "/project-info")
	assert.Equal(t, http.StatusOK, rec.Code)

	var info system.ProjectInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Hotel Booking & Reservation System", info.Project)
	assert.Contains(t, info.Architecture, "database")
}
