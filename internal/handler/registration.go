package handler

import (
	"net/http"

	"eventmanagement/internal/model"
	"eventmanagement/internal/service"
)

// RegistrationHandler holds the HTTP handlers for bookings and invoices.
type RegistrationHandler struct {
	svc *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Book handles POST /registrations
// Runs a single concurrency-safe purchase attempt for the caller.
func (h *RegistrationHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req model.BookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	booking, err := h.svc.Book(r.Context(), principalFrom(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// MyBookings handles GET /registrations/my-bookings
func (h *RegistrationHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.MyBookings(r.Context(), principalFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []model.RegistrationView{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Invoice handles GET /registrations/{id}/invoice
func (h *RegistrationHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}
	invoice, err := h.svc.Invoice(r.Context(), principalFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// HasBooked handles GET /registrations/has-booked/{eventId}
func (h *RegistrationHandler) HasBooked(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	booked, err := h.svc.HasBooked(r.Context(), principalFrom(r), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booked)
}
