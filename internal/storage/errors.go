package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE class 23 code for foreign key violations.
const fkViolationCode = "23503"

// ErrForeignKey marks a write rejected by a referential integrity
// constraint: creating a booking against an unknown client/tour, or
// deleting a tour that still has bookings.
var ErrForeignKey = errors.New("referential integrity violation")

// wrapWriteErr wraps err with op context, translating FK violations
// into ErrForeignKey so handlers can map them without importing pgconn.
func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return fmt.Errorf("%s: %w (%s)", op, ErrForeignKey, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
