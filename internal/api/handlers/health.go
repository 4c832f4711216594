package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// Health provides a minimal liveness check endpoint.
func Health(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowOnly(w, r, log, http.MethodGet) {
			return
		}

		res := map[string]string{"status": "ok"}
		writeJSON(w, r, log, http.StatusOK, res)
	}
}
