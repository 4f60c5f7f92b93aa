package handler

import (
	"net/http"

	"eventmanagement/internal/model"
	"eventmanagement/internal/service"
)

// VenueHandler holds the HTTP handlers for venue management.
type VenueHandler struct {
	svc *service.VenueService
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(svc *service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

// List handles GET /venues?activeOnly=
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"
	venues, err := h.svc.List(r.Context(), principalFrom(r), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	writeJSON(w, http.StatusOK, venues)
}

// Get handles GET /venues/{id}
func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid venue id")
		return
	}
	venue, err := h.svc.Get(r.Context(), principalFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

// Create handles POST /venues
func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.VenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	venue, err := h.svc.Create(r.Context(), principalFrom(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

// Update handles PUT /venues/{id}
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid venue id")
		return
	}
	var req model.VenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	venue, err := h.svc.Update(r.Context(), principalFrom(r), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

// Delete handles DELETE /venues/{id}
func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid venue id")
		return
	}
	if err := h.svc.Delete(r.Context(), principalFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
