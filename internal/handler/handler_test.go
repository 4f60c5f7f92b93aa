package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
	"eventmanagement/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"not bookable", service.ErrNotBookable, http.StatusBadRequest},
		{"event started", service.ErrEventStarted, http.StatusBadRequest},
		{"already booked", repository.ErrAlreadyBooked, http.StatusConflict},
		{"insufficient inventory", &repository.InsufficientInventoryError{Remaining: 2}, http.StatusConflict},
		{"booking race lost", repository.ErrBookingFailed, http.StatusConflict},
		{"venue conflict", service.ErrVenueConflict, http.StatusConflict},
		{"validation fallthrough", errors.New("event name is required"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body model.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not an error envelope: %v", err)
			}
			if body.Error == "" {
				t.Error("expected a non-empty error message")
			}
		})
	}
}

func TestWriteServiceError_InsufficientIncludesRemaining(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeServiceError(rec, &repository.InsufficientInventoryError{Remaining: 3})

	var body model.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "not enough tickets available, only 3 left" {
		t.Errorf("unexpected message %q", body.Error)
	}
}
