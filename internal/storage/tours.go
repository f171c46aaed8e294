package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drakoRRR/airport-backend/internal/travel"
)

const tourColumns = `tour_id, destination, duration, cost, transport, hotel, description, created_at, updated_at`

// TourRepository provides database access for tour rows.
type TourRepository struct {
	q Querier
}

// NewTourRepository constructs a TourRepository backed by the given pool.
func NewTourRepository(pool *pgxpool.Pool) *TourRepository {
	return &TourRepository{q: pool}
}

// NewTourRepositoryWithQuerier constructs a TourRepository with a custom Querier (for tests).
func NewTourRepositoryWithQuerier(q Querier) *TourRepository {
	return &TourRepository{q: q}
}

func scanTour(row pgx.Row) (*travel.Tour, error) {
	var t travel.Tour
	err := row.Scan(
		&t.ID,
		&t.Destination,
		&t.Duration,
		&t.Cost,
		&t.Transport,
		&t.Hotel,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tours.
func (r *TourRepository) List(ctx context.Context) ([]travel.Tour, error) {
	const q = `SELECT ` + tourColumns + ` FROM tours ORDER BY created_at`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying tours: %w", err)
	}
	defer rows.Close()

	var tours []travel.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tour row: %w", err)
		}
		tours = append(tours, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tour rows: %w", err)
	}

	return tours, nil
}

// GetByID retrieves a tour by its identifier.
// Returns nil, nil when the tour is not found.
func (r *TourRepository) GetByID(ctx context.Context, id uuid.UUID) (*travel.Tour, error) {
	const q = `SELECT ` + tourColumns + ` FROM tours WHERE tour_id = $1`

	t, err := scanTour(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying tour %s: %w", id, err)
	}
	return t, nil
}

// Create persists a new tour with a freshly generated identifier and
// returns the row as stored, including server-assigned timestamps.
func (r *TourRepository) Create(ctx context.Context, in travel.TourInput) (*travel.Tour, error) {
	const q = `
		INSERT INTO tours (tour_id, destination, duration, cost, transport, hotel, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + tourColumns

	id := uuid.New()
	t, err := scanTour(r.q.QueryRow(ctx, q, id, in.Destination, in.Duration, in.Cost, in.Transport, in.Hotel, in.Description))
	if err != nil {
		return nil, wrapWriteErr("creating tour", err)
	}
	return t, nil
}

// Update applies only the non-nil fields of patch and returns the
// refreshed row. Returns nil, nil when the tour is not found.
func (r *TourRepository) Update(ctx context.Context, id uuid.UUID, patch travel.TourPatch) (*travel.Tour, error) {
	const q = `
		UPDATE tours SET
			destination = COALESCE($2, destination),
			duration    = COALESCE($3, duration),
			cost        = COALESCE($4, cost),
			transport   = COALESCE($5, transport),
			hotel       = COALESCE($6, hotel),
			description = COALESCE($7, description),
			updated_at  = NOW()
		WHERE tour_id = $1
		RETURNING ` + tourColumns

	t, err := scanTour(r.q.QueryRow(ctx, q, id, patch.Destination, patch.Duration, patch.Cost, patch.Transport, patch.Hotel, patch.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapWriteErr("updating tour", err)
	}
	return t, nil
}

// Delete removes a tour and returns the row as it existed immediately
// before deletion. Returns nil, nil when the tour is not found.
// Deleting a tour that still has bookings fails with ErrForeignKey.
func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) (*travel.Tour, error) {
	const q = `DELETE FROM tours WHERE tour_id = $1 RETURNING ` + tourColumns

	t, err := scanTour(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapWriteErr("deleting tour", err)
	}
	return t, nil
}
