package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/model"
	"eventmanagement/internal/repository"
)

// EventDirectory exposes the event lookup the booking workflow needs.
type EventDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.EventView, error)
}

// AttendeeDirectory exposes the user lookup needed for booking views and
// invoices.
type AttendeeDirectory interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// BookingStore captures the registration persistence, including the
// transactional reserve-and-insert.
type BookingStore interface {
	Book(ctx context.Context, p repository.BookParams) (*model.Registration, error)
	GetByID(ctx context.Context, id int64) (*model.Registration, error)
	ListByUser(ctx context.Context, userID int64) ([]model.RegistrationView, error)
	ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error)
}

// RegistrationService orchestrates ticket purchases and derived booking
// views.
type RegistrationService struct {
	bookings BookingStore
	events   EventDirectory
	users    AttendeeDirectory
	now      func() time.Time
	newCode  func() string
}

// NewRegistrationService wires dependencies for booking operations. Nil now
// and newCode fall back to the real clock and a random code generator.
func NewRegistrationService(bookings BookingStore, events EventDirectory, users AttendeeDirectory, now func() time.Time, newCode func() string) *RegistrationService {
	if now == nil {
		now = time.Now
	}
	if newCode == nil {
		newCode = randomTicketToken
	}
	return &RegistrationService{
		bookings: bookings,
		events:   events,
		users:    users,
		now:      now,
		newCode:  newCode,
	}
}

// randomTicketToken returns the 8-character uppercase random component of a
// ticket code. Collisions are overwhelmingly unlikely and not retried.
func randomTicketToken() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// Book runs a single purchase attempt end to end:
//
//	identity -> role -> event exists -> published -> not started ->
//	no duplicate -> ensure ledger -> pre-check -> atomic reserve -> persist.
//
// The duplicate check through the insert run inside one database
// transaction; the atomic conditional decrement is the authoritative
// overbooking guard, with the pre-check serving only to fail early with the
// remaining count.
func (s *RegistrationService) Book(ctx context.Context, p Principal, req model.BookRequest) (*model.RegistrationView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAttendee() && !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if req.NumberOfTickets < 1 {
		return nil, fmt.Errorf("numberOfTickets must be at least 1")
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != model.StatusPublished {
		return nil, ErrNotBookable
	}
	if !event.StartDate.After(s.now()) {
		return nil, ErrEventStarted
	}

	code := fmt.Sprintf("EVT-%d-%s", event.ID, s.newCode())
	reg, err := s.bookings.Book(ctx, repository.BookParams{
		EventID:    event.ID,
		EventName:  event.Name,
		Capacity:   event.Capacity(),
		UserID:     p.UserID,
		Quantity:   req.NumberOfTickets,
		TicketCode: code,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	view := buildRegistrationView(reg, &event.Event, user)
	return &view, nil
}

// MyBookings returns the caller's registrations, newest first.
func (s *RegistrationService) MyBookings(ctx context.Context, p Principal) ([]model.RegistrationView, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	return s.bookings.ListByUser(ctx, p.UserID)
}

// HasBooked reports whether the caller already holds a registration for the
// event. An anonymous caller simply has not.
func (s *RegistrationService) HasBooked(ctx context.Context, p Principal, eventID int64) (bool, error) {
	if !p.Present() {
		return false, nil
	}
	return s.bookings.ExistsByEventAndUser(ctx, eventID, p.UserID)
}

// Invoice derives the invoice view for a booking. Only the booking's owner
// may request it.
func (s *RegistrationService) Invoice(ctx context.Context, p Principal, registrationID int64) (*model.Invoice, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	reg, err := s.bookings.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != p.UserID {
		return nil, ErrForbidden
	}
	event, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, reg.UserID)
	if err != nil {
		return nil, err
	}
	invoice := BuildInvoice(reg, &event.Event, user)
	return &invoice, nil
}

// BuildInvoice is the pure invoice projection: no side effects, safe to call
// repeatedly, never stored. A missing ticket price counts as zero.
func BuildInvoice(reg *model.Registration, event *model.Event, user *model.User) model.Invoice {
	price := event.Price()
	return model.Invoice{
		InvoiceNumber:   fmt.Sprintf("INV-%d-%s", reg.ID, reg.RegisteredAt.Format("20060102")),
		IssueDate:       reg.RegisteredAt,
		TicketCode:      reg.TicketCode,
		EventName:       event.Name,
		EventDate:       event.StartDate,
		EventLocation:   event.Location,
		AttendeeName:    user.FullName(),
		AttendeeEmail:   user.Email,
		NumberOfTickets: reg.NumberOfTickets,
		UnitPrice:       price,
		TotalAmount:     price * float64(reg.NumberOfTickets),
		PaymentStatus:   reg.PaymentStatus,
	}
}

func buildRegistrationView(reg *model.Registration, event *model.Event, user *model.User) model.RegistrationView {
	return model.RegistrationView{
		ID:              reg.ID,
		EventID:         event.ID,
		EventName:       event.Name,
		EventLocation:   event.Location,
		EventStartDate:  event.StartDate,
		EventEndDate:    event.EndDate,
		TicketPrice:     event.TicketPrice,
		NumberOfTickets: reg.NumberOfTickets,
		PaymentStatus:   reg.PaymentStatus,
		TicketCode:      reg.TicketCode,
		RegisteredAt:    reg.RegisteredAt,
		UserID:          user.ID,
		UserFirstName:   user.FirstName,
		UserLastName:    user.LastName,
		UserEmail:       user.Email,
	}
}
