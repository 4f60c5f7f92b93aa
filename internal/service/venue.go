package service

import (
	"context"
	"fmt"
	"strings"

	"eventmanagement/internal/model"
)

// VenueStore captures the venue persistence needed by the service.
type VenueStore interface {
	List(ctx context.Context, activeOnly bool) ([]model.Venue, error)
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	Create(ctx context.Context, v *model.Venue) (*model.Venue, error)
	Update(ctx context.Context, v *model.Venue) (*model.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// VenueService implements venue management. Reads are open to any
// authenticated caller; mutations are ADMIN only.
type VenueService struct {
	venues VenueStore
}

// NewVenueService constructs a VenueService.
func NewVenueService(venues VenueStore) *VenueService {
	return &VenueService{venues: venues}
}

// List returns venues, optionally only active ones.
func (s *VenueService) List(ctx context.Context, p Principal, activeOnly bool) ([]model.Venue, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	return s.venues.List(ctx, activeOnly)
}

// Get returns a single venue by id.
func (s *VenueService) Get(ctx context.Context, p Principal, id int64) (*model.Venue, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	return s.venues.GetByID(ctx, id)
}

// Create adds a venue. ADMIN only.
func (s *VenueService) Create(ctx context.Context, p Principal, req model.VenueRequest) (*model.Venue, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateVenue(req); err != nil {
		return nil, err
	}
	venue := venueFromRequest(req)
	venue.CreatedByID = &p.UserID
	return s.venues.Create(ctx, venue)
}

// Update rewrites a venue. ADMIN only.
func (s *VenueService) Update(ctx context.Context, p Principal, id int64, req model.VenueRequest) (*model.Venue, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateVenue(req); err != nil {
		return nil, err
	}
	existing, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	venue := venueFromRequest(req)
	venue.ID = existing.ID
	venue.CreatedByID = existing.CreatedByID
	return s.venues.Update(ctx, venue)
}

// Delete removes a venue. ADMIN only. Events pointing at it are left with no
// venue rather than deleted.
func (s *VenueService) Delete(ctx context.Context, p Principal, id int64) error {
	if !p.Present() {
		return ErrUnauthorized
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return s.venues.Delete(ctx, id)
}

func validateVenue(req model.VenueRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("venue name is required")
	}
	if req.Capacity != nil && *req.Capacity < 0 {
		return fmt.Errorf("capacity cannot be negative")
	}
	return nil
}

func venueFromRequest(req model.VenueRequest) *model.Venue {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &model.Venue{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		ZipCode:   strings.TrimSpace(req.ZipCode),
		Capacity:  req.Capacity,
		Amenities: req.Amenities,
		IsActive:  active,
	}
}
