package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventmanagement/internal/model"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Event views are read with one query: venue name, organizer name, and the
// ledger's remaining count come from LEFT JOINs instead of follow-up lookups.
const eventViewQuery = `
SELECT e.id, e.name, COALESCE(e.description, ''), e.start_date, e.end_date,
       COALESCE(e.location, ''), e.status, e.max_attendees, e.ticket_price,
       e.venue_id, e.organizer_id, e.created_at, e.updated_at,
       t.tickets_left, COALESCE(v.name, ''),
       COALESCE(u.first_name || ' ' || u.last_name, '')
FROM events e
LEFT JOIN tickets t ON t.event_id = e.id
LEFT JOIN venues v ON v.id = e.venue_id
LEFT JOIN users u ON u.id = e.organizer_id`

func scanEventView(row pgx.Row, ev *model.EventView) error {
	return row.Scan(&ev.ID, &ev.Name, &ev.Description, &ev.StartDate, &ev.EndDate,
		&ev.Location, &ev.Status, &ev.MaxAttendees, &ev.TicketPrice,
		&ev.VenueID, &ev.OrganizerID, &ev.CreatedAt, &ev.UpdatedAt,
		&ev.TicketsLeft, &ev.VenueName, &ev.OrganizerName)
}

func (r *EventRepository) listViews(ctx context.Context, suffix string, args ...any) ([]model.EventView, error) {
	rows, err := r.db.Query(ctx, eventViewQuery+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var views []model.EventView
	for rows.Next() {
		var ev model.EventView
		if err := scanEventView(rows, &ev); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		views = append(views, ev)
	}
	return views, rows.Err()
}

// GetByID returns a single event view or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.EventView, error) {
	var ev model.EventView
	err := scanEventView(r.db.QueryRow(ctx, eventViewQuery+` WHERE e.id = $1`, id), &ev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &ev, nil
}

// List returns all events ordered by start date.
func (r *EventRepository) List(ctx context.Context) ([]model.EventView, error) {
	return r.listViews(ctx, ` ORDER BY e.start_date, e.id`)
}

// ListByStatus returns events in the given lifecycle state.
func (r *EventRepository) ListByStatus(ctx context.Context, status model.EventStatus) ([]model.EventView, error) {
	return r.listViews(ctx, ` WHERE e.status = $1 ORDER BY e.start_date, e.id`, status)
}

// ListByOrganizer returns events owned by the given organizer.
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]model.EventView, error) {
	return r.listViews(ctx, ` WHERE e.organizer_id = $1 ORDER BY e.start_date, e.id`, organizerID)
}

// ListUpcomingPublished returns published events starting at or after the
// given instant, soonest first.
func (r *EventRepository) ListUpcomingPublished(ctx context.Context, from time.Time, limit int) ([]model.EventView, error) {
	return r.listViews(ctx,
		` WHERE e.status = 'PUBLISHED' AND e.start_date >= $1
		  ORDER BY e.start_date, e.id LIMIT $2`, from, limit)
}

// Search returns events whose name contains the given fragment,
// case-insensitively.
func (r *EventRepository) Search(ctx context.Context, name string) ([]model.EventView, error) {
	return r.listViews(ctx,
		` WHERE e.name ILIKE '%' || $1 || '%' ORDER BY e.start_date, e.id`, name)
}

// FindOverlapping returns non-cancelled events at the venue whose interval
// overlaps [start, end]. excludeID > 0 omits that event, for update-time
// checks against the event's own slot.
func (r *EventRepository) FindOverlapping(ctx context.Context, venueID int64, start, end time.Time, excludeID int64) ([]model.EventView, error) {
	candidates, err := r.listViews(ctx,
		` WHERE e.venue_id = $1
		    AND e.status <> 'CANCELLED'
		    AND e.id <> $2
		  ORDER BY e.start_date, e.id`,
		venueID, excludeID)
	if err != nil {
		return nil, err
	}
	overlapping := candidates[:0]
	for _, c := range candidates {
		if windowsOverlap(start, end, c.StartDate, c.EndDate) {
			overlapping = append(overlapping, c)
		}
	}
	return overlapping, nil
}

// windowsOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share at
// least one instant. Bounds are inclusive: windows touching at a boundary
// instant overlap.
func windowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Create inserts a new event and fills in its generated id and timestamps.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (name, description, start_date, end_date, location,
		                     status, max_attendees, ticket_price, venue_id, organizer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		e.Name, e.Description, e.StartDate, e.EndDate, e.Location,
		e.Status, e.MaxAttendees, e.TicketPrice, e.VenueID, e.OrganizerID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// Update rewrites the editable event fields and bumps updated_at.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE events
		 SET name = $2, description = $3, start_date = $4, end_date = $5,
		     location = $6, status = $7, max_attendees = $8, ticket_price = $9,
		     venue_id = $10, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		e.ID, e.Name, e.Description, e.StartDate, e.EndDate,
		e.Location, e.Status, e.MaxAttendees, e.TicketPrice, e.VenueID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

// Delete removes an event. Its registrations and ledger row cascade away.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of events.
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of events in the given state.
func (r *EventRepository) CountByStatus(ctx context.Context, status model.EventStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events by status: %w", err)
	}
	return n, nil
}
