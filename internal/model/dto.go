package model

import "time"

// RegisterUserRequest is the payload for self-service signup.
type RegisterUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a signed token plus the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the admin-only payload for creating accounts,
// including ADMIN ones.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
}

// UpdateUserRequest is the admin-only payload for editing accounts.
// Email and password are not editable through this path.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
}

// VenueRequest is the payload for creating or updating a venue.
type VenueRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Capacity  *int   `json:"capacity"`
	Amenities string `json:"amenities"`
	IsActive  *bool  `json:"isActive"`
}

// EventRequest is the payload for creating or updating an event. An assigned
// venue overrides Location and MaxAttendees with the venue's own values.
type EventRequest struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Location     string      `json:"location"`
	Status       EventStatus `json:"status"`
	MaxAttendees *int        `json:"maxAttendees"`
	TicketPrice  *float64    `json:"ticketPrice"`
	VenueID      *int64      `json:"venueId"`
}

// EventView is the event representation returned to clients, enriched with
// venue, organizer, and remaining-ticket information.
type EventView struct {
	Event
	TicketsLeft   *int   `json:"ticketsLeft,omitempty"`
	VenueName     string `json:"venueName,omitempty"`
	OrganizerName string `json:"organizerName,omitempty"`
}

// BookRequest is the payload for booking tickets on an event.
type BookRequest struct {
	EventID         int64 `json:"eventId"`
	NumberOfTickets int   `json:"numberOfTickets"`
}

// RegistrationView is the booking record returned to clients, carrying
// snapshots of the event and attendee alongside the registration itself.
type RegistrationView struct {
	ID              int64         `json:"id"`
	EventID         int64         `json:"eventId"`
	EventName       string        `json:"eventName"`
	EventLocation   string        `json:"eventLocation,omitempty"`
	EventStartDate  time.Time     `json:"eventStartDate"`
	EventEndDate    time.Time     `json:"eventEndDate"`
	TicketPrice     *float64      `json:"ticketPrice,omitempty"`
	NumberOfTickets int           `json:"numberOfTickets"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TicketCode      string        `json:"ticketCode"`
	RegisteredAt    time.Time     `json:"registeredAt"`
	UserID          int64         `json:"userId"`
	UserFirstName   string        `json:"userFirstName"`
	UserLastName    string        `json:"userLastName"`
	UserEmail       string        `json:"userEmail"`
}

// Invoice is the derived, human-readable view of a completed booking.
// It is computed on demand and never stored.
type Invoice struct {
	InvoiceNumber   string        `json:"invoiceNumber"`
	IssueDate       time.Time     `json:"issueDate"`
	TicketCode      string        `json:"ticketCode"`
	EventName       string        `json:"eventName"`
	EventDate       time.Time     `json:"eventDate"`
	EventLocation   string        `json:"eventLocation,omitempty"`
	AttendeeName    string        `json:"attendeeName"`
	AttendeeEmail   string        `json:"attendeeEmail"`
	NumberOfTickets int           `json:"numberOfTickets"`
	UnitPrice       float64       `json:"unitPrice"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
}

// DashboardStats summarises system-wide counts for the admin dashboard.
type DashboardStats struct {
	EventCount          int64 `json:"eventCount"`
	VenueCount          int64 `json:"venueCount"`
	UserCount           int64 `json:"userCount"`
	PublishedEventCount int64 `json:"publishedEventCount"`
}
