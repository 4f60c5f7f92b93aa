package service

import (
	"errors"

	"eventmanagement/internal/model"
)

var (
	// ErrUnauthorized is returned when no caller identity could be resolved.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller lacks the role an operation
	// requires.
	ErrForbidden = errors.New("forbidden")
	// ErrNotBookable is returned when the target event is not published.
	ErrNotBookable = errors.New("event is not available for booking")
	// ErrEventStarted is returned when the event's start time has passed.
	ErrEventStarted = errors.New("event has already started")
	// ErrVenueConflict is returned when an event's interval overlaps an
	// existing non-cancelled event at the same venue.
	ErrVenueConflict = errors.New("venue is already booked for this time period")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Principal is the resolved identity of the caller, passed explicitly into
// every service operation. The zero value means "no identity".
type Principal struct {
	UserID int64
	Role   model.Role
}

// Present reports whether an identity was resolved at all.
func (p Principal) Present() bool { return p.UserID != 0 }

// IsAdmin reports whether the caller holds the ADMIN role.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// IsOrganizer reports whether the caller holds the ORGANIZER role.
func (p Principal) IsOrganizer() bool { return p.Role == model.RoleOrganizer }

// IsAttendee reports whether the caller holds the ATTENDEE role.
func (p Principal) IsAttendee() bool { return p.Role == model.RoleAttendee }
