package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/logging"
	"visit-route-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L().Error("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Map a service error onto an HTTP status. Business rule messages are shown
// to the caller; anything unexpected is logged and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logging.L().With(
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("op", op),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, domain.ErrBusinessRule):
		log.Info("request rejected")
		writeError(w, r, http.StatusBadRequest, businessMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrExternalService):
		log.Error("directions service failed")
		writeError(w, r, http.StatusBadGateway, "directions service unavailable")
	default:
		log.Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// The innermost business rule message, without the wrapping context.
func businessMessage(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Is(e, domain.ErrBusinessRule) && errors.Unwrap(e) == domain.ErrBusinessRule {
			return e.Error()
		}
	}
	return err.Error()
}

// Decode exactly one JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// Parse the required analyst_id query parameter.
func analystIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("analyst_id"))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "analyst_id is required")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "analyst_id must be an integer")
		return 0, false
	}
	return id, true
}
