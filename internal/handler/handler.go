// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
	"eventmanagement/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is treated as a caller problem, the way validation errors
// surface from the service layer.
func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *repository.InsufficientInventoryError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrNotBookable),
		errors.Is(err, service.ErrEventStarted):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrAlreadyBooked):
		writeError(w, http.StatusConflict, "you have already booked this event")
	case errors.As(err, &insufficient):
		writeError(w, http.StatusConflict, insufficient.Error())
	case errors.Is(err, repository.ErrBookingFailed):
		writeError(w, http.StatusConflict, "not enough tickets available, booking failed")
	case errors.Is(err, service.ErrVenueConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
