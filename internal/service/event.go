package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventmanagement/internal/model"
)

// EventStore captures the event persistence needed by the service.
type EventStore interface {
	GetByID(ctx context.Context, id int64) (*model.EventView, error)
	List(ctx context.Context) ([]model.EventView, error)
	ListByStatus(ctx context.Context, status model.EventStatus) ([]model.EventView, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]model.EventView, error)
	ListUpcomingPublished(ctx context.Context, from time.Time, limit int) ([]model.EventView, error)
	Search(ctx context.Context, name string) ([]model.EventView, error)
	FindOverlapping(ctx context.Context, venueID int64, start, end time.Time, excludeID int64) ([]model.EventView, error)
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	Update(ctx context.Context, e *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
}

// VenueCatalog exposes venue lookup for event assignment.
type VenueCatalog interface {
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
}

// TicketLedger exposes the inventory reconciliation run after event edits.
type TicketLedger interface {
	Sync(ctx context.Context, eventID int64, eventName string, capacity int) error
}

// EventService orchestrates event CRUD: role-based visibility, venue
// assignment with conflict checking, and ticket-ledger upkeep.
type EventService struct {
	events EventStore
	venues VenueCatalog
	ledger TicketLedger
	now    func() time.Time
}

// NewEventService wires dependencies for event operations. A nil now falls
// back to time.Now.
func NewEventService(events EventStore, venues VenueCatalog, ledger TicketLedger, now func() time.Time) *EventService {
	if now == nil {
		now = time.Now
	}
	return &EventService{events: events, venues: venues, ledger: ledger, now: now}
}

// visibleTo is the single visibility predicate applied by every listing
// operation: ADMIN sees all events, an ORGANIZER sees their own plus all
// published ones, an ATTENDEE sees only published ones.
func visibleTo(role model.Role, callerID int64, e *model.Event) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleOrganizer:
		return e.OrganizerID == callerID || e.Status == model.StatusPublished
	default:
		return e.Status == model.StatusPublished
	}
}

func filterVisible(p Principal, views []model.EventView) []model.EventView {
	out := make([]model.EventView, 0, len(views))
	for _, v := range views {
		if visibleTo(p.Role, p.UserID, &v.Event) {
			out = append(out, v)
		}
	}
	return out
}

// List returns all events the caller may see.
func (s *EventService) List(ctx context.Context, p Principal) ([]model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	views, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return filterVisible(p, views), nil
}

// ListByStatus returns events in the given state, visibility-filtered.
func (s *EventService) ListByStatus(ctx context.Context, p Principal, status model.EventStatus) ([]model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	views, err := s.events.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return filterVisible(p, views), nil
}

// Search returns events whose name matches, visibility-filtered.
func (s *EventService) Search(ctx context.Context, p Principal, name string) ([]model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	views, err := s.events.Search(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return filterVisible(p, views), nil
}

// Upcoming returns the next published events. Open to anonymous callers;
// published events are public by definition.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]model.EventView, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}
	return s.events.ListUpcomingPublished(ctx, s.now(), limit)
}

// ListByOrganizer returns an organizer's events. Only ADMIN or the organizer
// themselves may ask.
func (s *EventService) ListByOrganizer(ctx context.Context, p Principal, organizerID int64) ([]model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if organizerID == 0 {
		organizerID = p.UserID
	}
	if !p.IsAdmin() && p.UserID != organizerID {
		return nil, ErrForbidden
	}
	return s.events.ListByOrganizer(ctx, organizerID)
}

// Get returns a single event view.
func (s *EventService) Get(ctx context.Context, p Principal, id int64) (*model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	return s.events.GetByID(ctx, id)
}

// Create adds an event owned by the caller. ORGANIZER or ADMIN only. An
// assigned venue overrides location and capacity and must be free for the
// event's time window.
func (s *EventService) Create(ctx context.Context, p Principal, req model.EventRequest) (*model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsOrganizer() && !p.IsAdmin() {
		return nil, ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}
	event := &model.Event{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Location:     strings.TrimSpace(req.Location),
		Status:       status,
		MaxAttendees: req.MaxAttendees,
		TicketPrice:  req.TicketPrice,
		OrganizerID:  p.UserID,
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if req.VenueID != nil {
		if err := s.assignVenue(ctx, event, *req.VenueID, 0); err != nil {
			return nil, err
		}
	}

	event, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if err := s.ledger.Sync(ctx, event.ID, event.Name, event.Capacity()); err != nil {
		return nil, fmt.Errorf("sync ticket ledger: %w", err)
	}
	return s.events.GetByID(ctx, event.ID)
}

// Update edits an event. ADMIN or the owning organizer only. A changed venue
// re-runs the conflict check against everyone else's bookings at that venue;
// an unchanged venue still re-syncs capacity from it.
func (s *EventService) Update(ctx context.Context, p Principal, id int64, req model.EventRequest) (*model.EventView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && existing.OrganizerID != p.UserID {
		return nil, ErrForbidden
	}

	event := existing.Event
	event.Name = strings.TrimSpace(req.Name)
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.TicketPrice = req.TicketPrice
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid status %q", req.Status)
		}
		// Transitions are deliberately unconstrained; any status may
		// follow any other.
		event.Status = req.Status
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = req.MaxAttendees
	}
	if err := validateEvent(&event); err != nil {
		return nil, err
	}

	venueChanged := req.VenueID != nil &&
		(event.VenueID == nil || *event.VenueID != *req.VenueID)
	if venueChanged {
		if err := s.assignVenue(ctx, &event, *req.VenueID, event.ID); err != nil {
			return nil, err
		}
	} else if event.VenueID != nil {
		// Keep capacity in lockstep with the assigned venue.
		venue, err := s.venues.GetByID(ctx, *event.VenueID)
		if err != nil {
			return nil, err
		}
		if venue.Capacity != nil {
			event.MaxAttendees = venue.Capacity
		}
	}

	updated, err := s.events.Update(ctx, &event)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Sync(ctx, updated.ID, updated.Name, updated.Capacity()); err != nil {
		return nil, fmt.Errorf("sync ticket ledger: %w", err)
	}
	return s.events.GetByID(ctx, updated.ID)
}

// Delete removes an event along with its registrations and ledger row.
// ADMIN or the owning organizer only.
func (s *EventService) Delete(ctx context.Context, p Principal, id int64) error {
	if !p.Present() {
		return ErrUnauthorized
	}
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() && existing.OrganizerID != p.UserID {
		return ErrForbidden
	}
	return s.events.Delete(ctx, id)
}

// assignVenue attaches a venue to the event, auto-populates location and
// capacity from it, and rejects the assignment when the venue is already
// booked for an overlapping window.
func (s *EventService) assignVenue(ctx context.Context, event *model.Event, venueID, excludeEventID int64) error {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return err
	}
	event.VenueID = &venue.ID
	if loc := venue.Location(); loc != "" {
		event.Location = loc
	}
	if venue.Capacity != nil {
		event.MaxAttendees = venue.Capacity
	}

	overlapping, err := s.events.FindOverlapping(ctx, venue.ID, event.StartDate, event.EndDate, excludeEventID)
	if err != nil {
		return fmt.Errorf("check venue availability: %w", err)
	}
	if len(overlapping) > 0 {
		return ErrVenueConflict
	}
	return nil
}

func validateEvent(e *model.Event) error {
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("end date must not be before start date")
	}
	if !e.Status.Valid() {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	if e.MaxAttendees != nil && *e.MaxAttendees < 0 {
		return fmt.Errorf("maxAttendees cannot be negative")
	}
	if e.TicketPrice != nil && *e.TicketPrice < 0 {
		return fmt.Errorf("ticketPrice cannot be negative")
	}
	return nil
}
