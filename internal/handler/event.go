package handler

import (
	"net/http"
	"strconv"

	"eventmanagement/internal/model"
	"eventmanagement/internal/service"
)

// EventHandler holds the HTTP handlers for event management.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /events?status=&search=
// A search term narrows by name; a status narrows by lifecycle state; both
// combine. Results are filtered to what the caller's role may see.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r)
	search := r.URL.Query().Get("search")
	status := model.EventStatus(r.URL.Query().Get("status"))

	var (
		events []model.EventView
		err    error
	)
	switch {
	case search != "":
		events, err = h.svc.Search(r.Context(), p, search)
		if err == nil && status != "" {
			filtered := events[:0]
			for _, e := range events {
				if e.Status == status {
					filtered = append(filtered, e)
				}
			}
			events = filtered
		}
	case status != "":
		events, err = h.svc.ListByStatus(r.Context(), p, status)
	default:
		events, err = h.svc.List(r.Context(), p)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []model.EventView{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Upcoming handles GET /events/upcoming?limit=
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.svc.Upcoming(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list upcoming events")
		return
	}
	if events == nil {
		events = []model.EventView{}
	}
	writeJSON(w, http.StatusOK, events)
}

// MyEvents handles GET /events/my-events
func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListByOrganizer(r.Context(), principalFrom(r), 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []model.EventView{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	event, err := h.svc.Get(r.Context(), principalFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	event, err := h.svc.Create(r.Context(), principalFrom(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var req model.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	event, err := h.svc.Update(r.Context(), principalFrom(r), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := h.svc.Delete(r.Context(), principalFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
