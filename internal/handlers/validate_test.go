package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authgate/internal/auth"
	"authgate/internal/ban"
	"authgate/internal/handlers"
	pkghttp "authgate/pkg/http"
	pkglogger "authgate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "swift-calm-wave-0123456789abcdef01234567-89abcdef01234567"

func newTestHandler(t *testing.T) (*handlers.ValidateHandler, *ban.Tracker) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	tracker := ban.NewTracker(ban.DefaultConfig(), logger)
	h := handlers.NewValidateHandler(
		auth.NewSecretValidator(testSecret),
		tracker,
		pkglogger.NewAuditLogger(logger),
		nil,
	)
	return h, tracker
}

func doValidate(h *handlers.ValidateHandler, remoteAddr, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/validate", nil)
	req.RemoteAddr = remoteAddr
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	h.Validate(w, req)
	return w
}

func TestValidate_MissingHeader(t *testing.T) {
	h, tracker := newTestHandler(t)

	w := doValidate(h, "10.0.0.5:40000", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no_credential", resp.Error)
	assert.Equal(t, "No authorization provided", resp.Detail)
	assert.Contains(t, resp.Message, "Bearer token")
	assert.Equal(t, "Authorization: Bearer your_token_here", resp.Example)

	// Missing header is a usage error, not an attack signal
	assert.Equal(t, 0, tracker.FailureCount("10.0.0.5"))
}

func TestValidate_BadScheme(t *testing.T) {
	h, tracker := newTestHandler(t)

	w := doValidate(h, "10.0.0.5:40000", "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_scheme", resp.Error)
	assert.Equal(t, "Invalid authorization format", resp.Detail)
	assert.Contains(t, resp.Message, "'Bearer '")

	assert.Equal(t, 1, tracker.FailureCount("10.0.0.5"))
}

func TestValidate_WrongToken(t *testing.T) {
	h, tracker := newTestHandler(t)

	w := doValidate(h, "10.0.0.5:40000", "Bearer not-the-right-token-at-all-000000")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_token", resp.Error)
	assert.Equal(t, "Invalid token", resp.Detail)

	assert.Equal(t, 1, tracker.FailureCount("10.0.0.5"))
}

func TestValidate_CorrectToken(t *testing.T) {
	h, tracker := newTestHandler(t)

	// Prior failures get wiped by the success
	tracker.RecordFailure("10.0.0.5", time.Now())
	tracker.RecordFailure("10.0.0.5", time.Now())

	w := doValidate(h, "10.0.0.5:40000", "Bearer "+testSecret)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "valid", w.Header().Get("X-Auth-Status"))
	assert.Equal(t, "10.0.0.5", w.Header().Get("X-Real-IP"))

	var resp handlers.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "valid", resp.Status)
	assert.Equal(t, "Token is valid", resp.Message)
	assert.Equal(t, "10.0.0.5", resp.ClientIP)

	assert.Equal(t, 0, tracker.FailureCount("10.0.0.5"))
}

func TestValidate_RepeatedWrongTokensBan(t *testing.T) {
	h, tracker := newTestHandler(t)

	for i := 0; i < 5; i++ {
		w := doValidate(h, "10.0.0.5:40000", "Bearer wrong-token-attempt-number-00000")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	assert.True(t, tracker.IsBanned("10.0.0.5", time.Now()))
}

func TestValidate_MissingHeaderDoesNotBan(t *testing.T) {
	h, tracker := newTestHandler(t)

	for i := 0; i < 10; i++ {
		doValidate(h, "10.0.0.5:40000", "")
	}

	assert.False(t, tracker.IsBanned("10.0.0.5", time.Now()))
	assert.Equal(t, 0, tracker.FailureCount("10.0.0.5"))
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handlers.Health("instance-1")(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "instance-1", resp.InstanceID)
}
