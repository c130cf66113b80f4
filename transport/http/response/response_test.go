package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "failure passes message", err: failure.Conflict("Room 101 is already booked for the selected dates"), code: http.StatusConflict, message: "Room 101 is already booked for the selected dates"},
		{name: "plain error is hidden", err: errors.New("sqlite: disk I/O error"), code: http.StatusInternalServerError, message: failure.MessageInternal},
		{name: "internal failure keeps its message", err: failure.Internal("Failed to list bookings", errors.New("boom")), code: http.StatusInternalServerError, message: "Failed to list bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.message, decode(t, rec)["error"])
		})
	}
}

func TestWithBody(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithBody(rec, http.StatusCreated, map[string]any{"id": 7, "room_number": "101"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 7, body["id"])
	assert.Equal(t, "101", body["room_number"])
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, []string{"101", "102"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"101", "102"}, decode(t, rec)["data"])
}

func TestWithPreparingShutdown(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithPreparingShutdown(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVER PREPARING TO SHUT DOWN", decode(t, rec)["message"])
}
