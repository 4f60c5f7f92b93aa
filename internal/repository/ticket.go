package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventmanagement/internal/model"
)

// TicketRepository is the inventory ledger: one row per event holding the
// capacity ceiling and the remaining seat count. Every method takes a Querier
// so callers can run it against the pool or inside a transaction.
type TicketRepository struct{}

// NewTicketRepository constructs a TicketRepository.
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{}
}

// Ledger binds the ticket repository to the shared pool for callers that
// operate outside a transaction, such as the post-edit capacity sync.
type Ledger struct {
	db      *pgxpool.Pool
	tickets *TicketRepository
}

// NewLedger constructs a Ledger.
func NewLedger(db *pgxpool.Pool, tickets *TicketRepository) *Ledger {
	return &Ledger{db: db, tickets: tickets}
}

// Get returns the ledger row for an event, or ErrNotFound.
func (l *Ledger) Get(ctx context.Context, eventID int64) (*model.Ticket, error) {
	return l.tickets.Get(ctx, l.db, eventID)
}

// Sync reconciles the ledger with the event's current name and capacity.
func (l *Ledger) Sync(ctx context.Context, eventID int64, eventName string, capacity int) error {
	return l.tickets.Sync(ctx, l.db, eventID, eventName, capacity)
}

// Get returns the ledger row for an event, or ErrNotFound.
func (r *TicketRepository) Get(ctx context.Context, q Querier, eventID int64) (*model.Ticket, error) {
	var t model.Ticket
	err := q.QueryRow(ctx,
		`SELECT id, event_id, event_name, max_tickets, tickets_left
		 FROM tickets WHERE event_id = $1`,
		eventID,
	).Scan(&t.ID, &t.EventID, &t.EventName, &t.MaxTickets, &t.TicketsLeft)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ticket ledger: %w", err)
	}
	return &t, nil
}

// Ensure returns the existing ledger row for the event or creates one seeded
// with tickets_left = max(0, capacity - alreadyBooked). An existing row is
// never overwritten, so the remaining count survives repeated calls.
func (r *TicketRepository) Ensure(ctx context.Context, q Querier, eventID int64, eventName string, capacity, alreadyBooked int) (*model.Ticket, error) {
	t, err := r.Get(ctx, q, eventID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	left := capacity - alreadyBooked
	if left < 0 {
		left = 0
	}
	t = &model.Ticket{
		EventID:     eventID,
		EventName:   eventName,
		MaxTickets:  capacity,
		TicketsLeft: left,
	}
	err = q.QueryRow(ctx,
		`INSERT INTO tickets (event_id, event_name, max_tickets, tickets_left)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (event_id) DO NOTHING
		 RETURNING id`,
		t.EventID, t.EventName, t.MaxTickets, t.TicketsLeft,
	).Scan(&t.ID)
	if err != nil {
		// Another caller inserted the row between our read and write.
		if errors.Is(err, pgx.ErrNoRows) {
			return r.Get(ctx, q, eventID)
		}
		return nil, fmt.Errorf("insert ticket ledger: %w", err)
	}
	return t, nil
}

// Reserve atomically claims quantity seats for the event. The WHERE-clause
// guard is the concurrency primitive: the decrement happens only when enough
// seats remain, evaluated by the database under row-level locking. It returns
// the number of rows affected; zero means either the ledger row is missing or
// the remaining count was too low, and the caller must have pre-checked
// existence to tell those apart.
func (r *TicketRepository) Reserve(ctx context.Context, q Querier, eventID int64, quantity int) (int64, error) {
	tag, err := q.Exec(ctx,
		`UPDATE tickets SET tickets_left = tickets_left - $2
		 WHERE event_id = $1 AND tickets_left >= $2`,
		eventID, quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("reserve tickets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Sync reconciles the ledger after an event edit: max_tickets takes the new
// capacity and tickets_left is clamped to it. The remaining count is never
// raised, even when capacity grows; seats already consumed stay consumed.
// A missing row is created at full capacity.
func (r *TicketRepository) Sync(ctx context.Context, q Querier, eventID int64, eventName string, capacity int) error {
	tag, err := q.Exec(ctx,
		`UPDATE tickets
		 SET event_name = $2, max_tickets = $3, tickets_left = LEAST(tickets_left, $3)
		 WHERE event_id = $1`,
		eventID, eventName, capacity,
	)
	if err != nil {
		return fmt.Errorf("sync ticket ledger: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	_, err = q.Exec(ctx,
		`INSERT INTO tickets (event_id, event_name, max_tickets, tickets_left)
		 VALUES ($1, $2, $3, $3)
		 ON CONFLICT (event_id) DO NOTHING`,
		eventID, eventName, capacity,
	)
	if err != nil {
		return fmt.Errorf("insert ticket ledger: %w", err)
	}
	return nil
}
