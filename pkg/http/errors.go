package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error"`             // Machine-readable reason code
	Detail  string `json:"detail"`            // Human-readable description
	Message string `json:"message,omitempty"` // Hint for fixing the request
	Example string `json:"example,omitempty"` // Example of correct usage
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, errorCode, detail string) {
	WriteErrorWithHint(w, statusCode, errorCode, detail, "", "")
}

// WriteErrorWithHint writes a JSON error response carrying a hint and a
// usage example alongside the reason code
func WriteErrorWithHint(w http.ResponseWriter, statusCode int, errorCode, detail, message, example string) {
	resp := ErrorResponse{
		Error:   errorCode,
		Detail:  detail,
		Message: message,
		Example: example,
	}
	WriteJSON(w, statusCode, resp)
}

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Log encoding errors but don't expose them to client
	_ = json.NewEncoder(w).Encode(v)
}

// Common error writers for consistency
func WriteForbidden(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusForbidden, "forbidden", detail)
}

func WriteTooManyRequests(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", detail)
}

func WriteInternalError(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", detail)
}
