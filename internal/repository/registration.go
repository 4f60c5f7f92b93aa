package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"eventmanagement/internal/model"
)

// ErrAlreadyBooked is returned when the user already holds a registration
// for the event.
var ErrAlreadyBooked = errors.New("already booked")

// ErrBookingFailed is returned when the atomic reservation affected zero
// rows: a concurrent booking consumed the remaining seats between the
// pre-check and the decrement.
var ErrBookingFailed = errors.New("booking failed")

// InsufficientInventoryError is returned by the pre-check when fewer seats
// remain than requested. Remaining is surfaced to the caller.
type InsufficientInventoryError struct {
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("not enough tickets available, only %d left", e.Remaining)
}

// RegistrationRepository handles persistence for registrations, including
// the transactional booking path.
type RegistrationRepository struct {
	db      DB
	tickets *TicketRepository
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db DB, tickets *TicketRepository) *RegistrationRepository {
	return &RegistrationRepository{db: db, tickets: tickets}
}

// BookParams carries everything Book needs about an already-validated event.
type BookParams struct {
	EventID    int64
	EventName  string
	Capacity   int
	UserID     int64
	Quantity   int
	TicketCode string
}

// Book performs the seat reservation and registration insert in one
// transaction, so a failed insert rolls the ledger decrement back.
//
// Inside the transaction:
//  1. reject a duplicate (event, user) registration,
//  2. ensure the ledger row exists, lazily seeded from capacity minus the
//     registrations already counted,
//  3. pre-check the remaining count to surface a precise error early,
//  4. run the atomic conditional decrement - the authoritative guard;
//     zero rows affected means a concurrent booking won the race,
//  5. insert the registration with payment status COMPLETED.
func (r *RegistrationRepository) Book(ctx context.Context, p BookParams) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var alreadyBooked bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		p.EventID, p.UserID,
	).Scan(&alreadyBooked)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if alreadyBooked {
		return nil, ErrAlreadyBooked
	}

	var bookedCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, p.EventID,
	).Scan(&bookedCount)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	ledger, err := r.tickets.Ensure(ctx, tx, p.EventID, p.EventName, p.Capacity, bookedCount)
	if err != nil {
		return nil, err
	}

	if ledger.TicketsLeft < p.Quantity {
		return nil, &InsufficientInventoryError{Remaining: ledger.TicketsLeft}
	}

	affected, err := r.tickets.Reserve(ctx, tx, p.EventID, p.Quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBookingFailed
	}

	reg := &model.Registration{
		EventID:         p.EventID,
		UserID:          p.UserID,
		NumberOfTickets: p.Quantity,
		PaymentStatus:   model.PaymentCompleted,
		TicketCode:      p.TicketCode,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO registrations (event_id, user_id, number_of_tickets, payment_status, ticket_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, registered_at`,
		reg.EventID, reg.UserID, reg.NumberOfTickets, reg.PaymentStatus, reg.TicketCode,
	).Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// GetByID returns a single registration or ErrNotFound.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.QueryRow(ctx,
		`SELECT id, event_id, user_id, number_of_tickets, payment_status,
		        COALESCE(ticket_code, ''), registered_at
		 FROM registrations WHERE id = $1`,
		id,
	).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.NumberOfTickets,
		&reg.PaymentStatus, &reg.TicketCode, &reg.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return &reg, nil
}

// ListByUser returns the user's bookings, newest first, with event and
// attendee snapshots joined in.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]model.RegistrationView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.event_id, e.name, COALESCE(e.location, ''),
		        e.start_date, e.end_date, e.ticket_price,
		        r.number_of_tickets, r.payment_status, COALESCE(r.ticket_code, ''),
		        r.registered_at, r.user_id, u.first_name, u.last_name, u.email
		 FROM registrations r
		 JOIN events e ON e.id = r.event_id
		 JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = $1
		 ORDER BY r.registered_at DESC, r.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var views []model.RegistrationView
	for rows.Next() {
		var v model.RegistrationView
		if err := rows.Scan(&v.ID, &v.EventID, &v.EventName, &v.EventLocation,
			&v.EventStartDate, &v.EventEndDate, &v.TicketPrice,
			&v.NumberOfTickets, &v.PaymentStatus, &v.TicketCode,
			&v.RegisteredAt, &v.UserID, &v.UserFirstName, &v.UserLastName, &v.UserEmail); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// ExistsByEventAndUser reports whether the user already booked the event.
func (r *RegistrationRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}
