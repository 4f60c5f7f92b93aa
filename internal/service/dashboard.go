package service

import (
	"context"
	"fmt"

	"eventmanagement/internal/model"
)

// EventCounter exposes the event counts used by the dashboard.
type EventCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.EventStatus) (int64, error)
}

// VenueCounter exposes the venue count used by the dashboard.
type VenueCounter interface {
	Count(ctx context.Context) (int64, error)
}

// UserCounter exposes the user count used by the dashboard.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardService aggregates system-wide counts.
type DashboardService struct {
	events EventCounter
	venues VenueCounter
	users  UserCounter
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(events EventCounter, venues VenueCounter, users UserCounter) *DashboardService {
	return &DashboardService{events: events, venues: venues, users: users}
}

// Stats returns the dashboard counters for any authenticated caller.
func (s *DashboardService) Stats(ctx context.Context, p Principal) (*model.DashboardStats, error) {
	if !p.Present() {
		return nil, ErrUnauthorized
	}

	eventCount, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	venueCount, err := s.venues.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count venues: %w", err)
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	published, err := s.events.CountByStatus(ctx, model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("count published events: %w", err)
	}

	return &model.DashboardStats{
		EventCount:          eventCount,
		VenueCount:          venueCount,
		UserCount:           userCount,
		PublishedEventCount: published,
	}, nil
}
