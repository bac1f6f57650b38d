package handlers

import (
	"errors"
	"net/http"
	"time"

	"authgate/internal/auth"
	"authgate/internal/ban"
	pkghttp "authgate/pkg/http"
	pkglogger "authgate/pkg/logger"
)

const bearerExample = "Authorization: Bearer your_token_here"

// ValidateHandler handles token validation requests
type ValidateHandler struct {
	validator *auth.SecretValidator
	tracker   *ban.Tracker
	audit     *pkglogger.AuditLogger
	ipConfig  *pkghttp.IPConfig
}

// NewValidateHandler creates a new ValidateHandler
func NewValidateHandler(validator *auth.SecretValidator, tracker *ban.Tracker, audit *pkglogger.AuditLogger, ipConfig *pkghttp.IPConfig) *ValidateHandler {
	return &ValidateHandler{
		validator: validator,
		tracker:   tracker,
		audit:     audit,
		ipConfig:  ipConfig,
	}
}

// ValidateResponse is the success payload for a valid token
type ValidateResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ClientIP string `json:"client_ip"`
}

// Validate checks the bearer token in the Authorization header.
// Ban checking already happened in middleware; this only runs for clients
// that are not currently banned.
//
// A missing header is treated as a usage error and is NOT counted as a
// failed attempt, matching the original policy. Whether probe traffic
// omitting the header should count toward the ban threshold is an open
// product question; see DESIGN.md before changing this.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	clientIP := pkghttp.ClientIP(r, h.ipConfig)

	token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	switch {
	case errors.Is(err, auth.ErrNoCredential):
		pkghttp.WriteErrorWithHint(w, http.StatusUnauthorized, "no_credential",
			"No authorization provided",
			"Please provide a Bearer token in the Authorization header",
			bearerExample)
		return

	case errors.Is(err, auth.ErrBadScheme):
		h.recordFailure(r, clientIP, "bad_scheme")
		pkghttp.WriteErrorWithHint(w, http.StatusUnauthorized, "bad_scheme",
			"Invalid authorization format",
			"Authorization header must start with 'Bearer '",
			bearerExample)
		return
	}

	if err := h.validator.Validate(token); err != nil {
		h.recordFailure(r, clientIP, "invalid_token")
		pkghttp.WriteErrorWithHint(w, http.StatusUnauthorized, "invalid_token",
			"Invalid token",
			"The provided token is not valid",
			"")
		return
	}

	h.tracker.RecordSuccess(clientIP)
	h.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "token_validated",
		ClientIP:  clientIP,
		UserAgent: r.UserAgent(),
		Success:   true,
	})

	w.Header().Set("X-Auth-Status", "valid")
	w.Header().Set("X-Real-IP", clientIP)
	pkghttp.WriteJSON(w, http.StatusOK, ValidateResponse{
		Status:   "valid",
		Message:  "Token is valid",
		ClientIP: clientIP,
	})
}

func (h *ValidateHandler) recordFailure(r *http.Request, clientIP, reason string) {
	h.tracker.RecordFailure(clientIP, time.Now())
	h.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "token_rejected",
		ClientIP:      clientIP,
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: reason,
	})
}
