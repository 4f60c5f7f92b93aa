// Package model defines the core domain types for the event management system.
package model

import "time"

// Role is the access level assigned to a user account.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleAttendee  Role = "ATTENDEE"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleAttendee:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event. Transitions are free-form
// field updates; any status may follow any other.
type EventStatus string

const (
	StatusDraft     EventStatus = "DRAFT"
	StatusPublished EventStatus = "PUBLISHED"
	StatusCancelled EventStatus = "CANCELLED"
	StatusCompleted EventStatus = "COMPLETED"
)

// Valid reports whether the status is one of the known values.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// PaymentStatus tracks whether a registration has been paid for. There is no
// real payment gateway; bookings are persisted as COMPLETED.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// User is an account holder: an administrator, an event organizer, or an
// attendee who books tickets.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins first and last name for display fields.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Venue is a physical location that events can be assigned to.
type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Capacity    *int   `json:"capacity,omitempty"`
	Amenities   string `json:"amenities,omitempty"`
	IsActive    bool   `json:"isActive"`
	CreatedByID *int64 `json:"createdById,omitempty"`
}

// Location renders "address, city[, state]" for events held at the venue.
func (v *Venue) Location() string {
	if v.Address == "" || v.City == "" {
		return ""
	}
	loc := v.Address + ", " + v.City
	if v.State != "" {
		loc += ", " + v.State
	}
	return loc
}

// Event is a bookable event created by an organizer, optionally tied to a
// venue.
type Event struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Location     string      `json:"location,omitempty"`
	Status       EventStatus `json:"status"`
	MaxAttendees *int        `json:"maxAttendees,omitempty"`
	TicketPrice  *float64    `json:"ticketPrice,omitempty"`
	VenueID      *int64      `json:"venueId,omitempty"`
	OrganizerID  int64       `json:"organizerId"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Capacity returns the event's attendee ceiling, treating absence as zero.
func (e *Event) Capacity() int {
	if e.MaxAttendees == nil {
		return 0
	}
	return *e.MaxAttendees
}

// Price returns the ticket price, treating absence as zero.
func (e *Event) Price() float64 {
	if e.TicketPrice == nil {
		return 0
	}
	return *e.TicketPrice
}

// Registration links one user to one event with a ticket quantity.
// At most one registration exists per (event, user) pair.
type Registration struct {
	ID              int64         `json:"id"`
	EventID         int64         `json:"eventId"`
	UserID          int64         `json:"userId"`
	NumberOfTickets int           `json:"numberOfTickets"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TicketCode      string        `json:"ticketCode"`
	RegisteredAt    time.Time     `json:"registeredAt"`
}

// Ticket is the per-event inventory ledger: capacity ceiling and seats left.
// Invariant: 0 <= TicketsLeft <= MaxTickets.
type Ticket struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"eventId"`
	EventName   string `json:"eventName"`
	MaxTickets  int    `json:"maxTickets"`
	TicketsLeft int    `json:"ticketsLeft"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
