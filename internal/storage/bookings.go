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

const bookingColumns = `booking_id, client_id, tour_id, status, booking_date`

// BookingRepository provides database access for booking rows.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository constructs a BookingRepository backed by the given pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{q: pool}
}

// NewBookingRepositoryWithQuerier constructs a BookingRepository with a custom Querier (for tests).
func NewBookingRepositoryWithQuerier(q Querier) *BookingRepository {
	return &BookingRepository{q: q}
}

func scanBooking(row pgx.Row) (*travel.Booking, error) {
	var b travel.Booking
	var status string
	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.TourID,
		&status,
		&b.BookingDate,
	)
	if err != nil {
		return nil, err
	}
	b.Status = travel.BookingStatus(status)
	return &b, nil
}

// List returns all bookings.
func (r *BookingRepository) List(ctx context.Context) ([]travel.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booking_date`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []travel.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}

// GetByID retrieves a booking by its identifier.
// Returns nil, nil when the booking is not found.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*travel.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	b, err := scanBooking(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying booking %s: %w", id, err)
	}
	return b, nil
}

// Create persists a new booking and returns the row as stored.
// Referencing an unknown client or tour fails with ErrForeignKey.
func (r *BookingRepository) Create(ctx context.Context, in travel.BookingInput) (*travel.Booking, error) {
	const q = `
		INSERT INTO bookings (booking_id, client_id, tour_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookingColumns

	id := uuid.New()
	b, err := scanBooking(r.q.QueryRow(ctx, q, id, in.ClientID, in.TourID, string(in.Status)))
	if err != nil {
		return nil, wrapWriteErr("creating booking", err)
	}
	return b, nil
}

// Update applies only the non-nil fields of patch and returns the
// refreshed row. Returns nil, nil when the booking is not found.
func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, patch travel.BookingPatch) (*travel.Booking, error) {
	const q = `
		UPDATE bookings SET
			status  = COALESCE($2, status),
			tour_id = COALESCE($3, tour_id)
		WHERE booking_id = $1
		RETURNING ` + bookingColumns

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	b, err := scanBooking(r.q.QueryRow(ctx, q, id, status, patch.TourID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapWriteErr("updating booking", err)
	}
	return b, nil
}

// Delete removes a booking and returns the row as it existed immediately
// before deletion. Returns nil, nil when the booking is not found.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) (*travel.Booking, error) {
	const q = `DELETE FROM bookings WHERE booking_id = $1 RETURNING ` + bookingColumns

	b, err := scanBooking(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapWriteErr("deleting booking", err)
	}
	return b, nil
}
