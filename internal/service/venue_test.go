package service

import (
	"context"
	"errors"
	"testing"

	"eventmanagement/internal/model"
)

type venueStoreStub struct {
	venues  []model.Venue
	venue   *model.Venue
	created *model.Venue
	updated *model.Venue
	deleted int64
	err     error
}

func (s *venueStoreStub) List(ctx context.Context, activeOnly bool) ([]model.Venue, error) {
	return s.venues, s.err
}

func (s *venueStoreStub) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.venue, nil
}

func (s *venueStoreStub) Create(ctx context.Context, v *model.Venue) (*model.Venue, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *v
	out.ID = 5
	s.created = &out
	return &out, nil
}

func (s *venueStoreStub) Update(ctx context.Context, v *model.Venue) (*model.Venue, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *v
	s.updated = &out
	return &out, nil
}

func (s *venueStoreStub) Delete(ctx context.Context, id int64) error {
	s.deleted = id
	return s.err
}

func TestVenueService_MutationsAreAdminOnly(t *testing.T) {
	t.Parallel()

	svc := NewVenueService(&venueStoreStub{venue: &model.Venue{ID: 5}})
	organizer := Principal{UserID: 2, Role: model.RoleOrganizer}
	req := model.VenueRequest{Name: "Grand Hall"}

	if _, err := svc.Create(context.Background(), organizer, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("Create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), organizer, 5, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("Update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), organizer, 5); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete: expected ErrForbidden, got %v", err)
	}
}

func TestVenueService_CreateRecordsCreator(t *testing.T) {
	t.Parallel()

	store := &venueStoreStub{}
	svc := NewVenueService(store)

	venue, err := svc.Create(context.Background(), admin(), model.VenueRequest{Name: "Grand Hall", City: "Pune"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venue.CreatedByID == nil || *venue.CreatedByID != 1 {
		t.Errorf("expected creator 1, got %v", venue.CreatedByID)
	}
	if !venue.IsActive {
		t.Error("expected new venue to default to active")
	}
}

func TestVenueService_CreateValidation(t *testing.T) {
	t.Parallel()

	negCap := -10
	tests := []struct {
		name string
		req  model.VenueRequest
	}{
		{"missing name", model.VenueRequest{Name: "  "}},
		{"negative capacity", model.VenueRequest{Name: "Grand Hall", Capacity: &negCap}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewVenueService(&venueStoreStub{})
			if _, err := svc.Create(context.Background(), admin(), tt.req); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestVenueService_UpdatePreservesCreator(t *testing.T) {
	t.Parallel()

	creator := int64(3)
	store := &venueStoreStub{venue: &model.Venue{ID: 5, Name: "Old Hall", CreatedByID: &creator}}
	svc := NewVenueService(store)

	venue, err := svc.Update(context.Background(), admin(), 5, model.VenueRequest{Name: "New Hall"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venue.Name != "New Hall" {
		t.Errorf("unexpected name %q", venue.Name)
	}
	if venue.CreatedByID == nil || *venue.CreatedByID != 3 {
		t.Errorf("creator changed: %v", venue.CreatedByID)
	}
}
