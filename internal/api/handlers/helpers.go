package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/services"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Warn("encode failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, msg string) {
	writeJSON(w, r, log, status, map[string]string{"error": msg})
}

// decodeBody decodes exactly one JSON object with no unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	var unknown *domain.UnknownLocationError
	var noRoute *services.NoRouteError
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &noRoute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnknownPolicy),
		errors.Is(err, services.ErrNoSamples),
		errors.Is(err, domain.ErrDeliveredParcel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
		writeError(w, r, log, status, "internal server error")
		return
	}
	writeError(w, r, log, status, err.Error())
}

func allowOnly(w http.ResponseWriter, r *http.Request, log *zap.Logger, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, log, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
