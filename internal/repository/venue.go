package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventmanagement/internal/model"
)

// VenueRepository handles persistence for venues.
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository constructs a VenueRepository.
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{db: db}
}

const venueColumns = `id, name, COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''), capacity, COALESCE(amenities, ''), is_active, created_by`

func scanVenueRow(row pgx.Row, v *model.Venue) error {
	return row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.ZipCode,
		&v.Capacity, &v.Amenities, &v.IsActive, &v.CreatedByID)
}

// Create inserts a new venue and returns it with its generated id.
func (r *VenueRepository) Create(ctx context.Context, v *model.Venue) (*model.Venue, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO venues (name, address, city, state, zip_code, capacity, amenities, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		v.Name, v.Address, v.City, v.State, v.ZipCode, v.Capacity, v.Amenities, v.IsActive, v.CreatedByID,
	).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("insert venue: %w", err)
	}
	return v, nil
}

// Update rewrites all editable venue fields.
func (r *VenueRepository) Update(ctx context.Context, v *model.Venue) (*model.Venue, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE venues
		 SET name = $2, address = $3, city = $4, state = $5, zip_code = $6,
		     capacity = $7, amenities = $8, is_active = $9
		 WHERE id = $1`,
		v.ID, v.Name, v.Address, v.City, v.State, v.ZipCode, v.Capacity, v.Amenities, v.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return v, nil
}

// GetByID returns a single venue or ErrNotFound.
func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	var v model.Venue
	err := scanVenueRow(r.db.QueryRow(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = $1`, id), &v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &v, nil
}

// List returns venues ordered by name, optionally restricted to active ones.
func (r *VenueRepository) List(ctx context.Context, activeOnly bool) ([]model.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := scanVenueRow(rows, &v); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// Delete removes a venue by id. Events referencing it keep running with
// venue_id set to NULL by the schema.
func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of venues.
func (r *VenueRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return n, nil
}
