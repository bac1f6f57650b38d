package handlers

import (
	"net/http"

	pkghttp "authgate/pkg/http"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id"`
}

// Health returns a liveness handler. It answers regardless of ban or
// credential state, so deployment probes keep working while an operator's
// address happens to be banned.
func Health(instanceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:     "healthy",
			InstanceID: instanceID,
		})
	}
}
