package travel

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// BookingStatus is the closed set of states a booking can be in.
// Unknown values are rejected at the API boundary and never persisted.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
)

// Valid reports whether s is one of the accepted booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// Tour is a bookable tour as stored in Postgres.
type Tour struct {
	ID          uuid.UUID  `json:"tour_id"`
	Destination string     `json:"destination"`
	Duration    int        `json:"duration"`
	Cost        float64    `json:"cost"`
	Transport   string     `json:"transport"`
	Hotel       string     `json:"hotel"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TourInput carries the fields a client supplies when creating a tour.
type TourInput struct {
	Destination string  `json:"destination"`
	Duration    int     `json:"duration"`
	Cost        float64 `json:"cost"`
	Transport   string  `json:"transport"`
	Hotel       string  `json:"hotel"`
	Description *string `json:"description"`
}

// Validate checks the create payload. Duration must be positive, cost
// non-negative, and the text fields non-empty.
func (in TourInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Destination, validation.Required),
		validation.Field(&in.Duration, validation.Required, validation.Min(1)),
		validation.Field(&in.Cost, validation.Min(0.0)),
		validation.Field(&in.Transport, validation.Required),
		validation.Field(&in.Hotel, validation.Required),
	)
}

// TourPatch carries a partial update. Nil fields are left untouched.
type TourPatch struct {
	Destination *string  `json:"destination"`
	Duration    *int     `json:"duration"`
	Cost        *float64 `json:"cost"`
	Transport   *string  `json:"transport"`
	Hotel       *string  `json:"hotel"`
	Description *string  `json:"description"`
}

// Validate checks only the supplied fields; nil pointers pass.
func (p TourPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Destination, validation.NilOrNotEmpty),
		validation.Field(&p.Duration, validation.By(positiveIfSupplied)),
		validation.Field(&p.Cost, validation.Min(0.0)),
		validation.Field(&p.Transport, validation.NilOrNotEmpty),
		validation.Field(&p.Hotel, validation.NilOrNotEmpty),
	)
}

// Booking ties a client to a tour.
type Booking struct {
	ID          uuid.UUID     `json:"booking_id"`
	ClientID    uuid.UUID     `json:"client_id"`
	TourID      uuid.UUID     `json:"tour_id"`
	Status      BookingStatus `json:"status"`
	BookingDate *time.Time    `json:"booking_date"`
}

// BookingInput carries the fields a client supplies when creating a booking.
// Status may be empty, in which case it defaults to "confirmed".
type BookingInput struct {
	ClientID uuid.UUID     `json:"client_id"`
	TourID   uuid.UUID     `json:"tour_id"`
	Status   BookingStatus `json:"status"`
}

func (in BookingInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.By(requiredUUID)),
		validation.Field(&in.TourID, validation.By(requiredUUID)),
		validation.Field(&in.Status, validation.By(statusRule)),
	)
}

// BookingPatch carries a partial booking update. Nil fields are left untouched.
type BookingPatch struct {
	Status *BookingStatus `json:"status"`
	TourID *uuid.UUID     `json:"tour_id"`
}

func (p BookingPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.By(suppliedStatusRule)),
	)
}

var errUnknownStatus = validation.NewError("validation_booking_status", "must be one of pending, confirmed, canceled")

// statusRule accepts an empty status (the boundary substitutes the
// default before persisting) or one from the closed set.
func statusRule(value any) error {
	if s, ok := value.(BookingStatus); ok && s != "" && !s.Valid() {
		return errUnknownStatus
	}
	return nil
}

// suppliedStatusRule validates a patch status. Nil means the field stays
// untouched; a supplied value must be from the closed set, so an empty
// string is rejected rather than persisted.
func suppliedStatusRule(value any) error {
	p, ok := value.(*BookingStatus)
	if !ok || p == nil {
		return nil
	}
	if !p.Valid() {
		return errUnknownStatus
	}
	return nil
}

// requiredUUID rejects the zero identifier. ozzo's Required cannot,
// because a fixed-size array is never empty to it.
func requiredUUID(value any) error {
	if id, ok := value.(uuid.UUID); ok && id != uuid.Nil {
		return nil
	}
	return validation.NewError("validation_required", "cannot be blank")
}

// positiveIfSupplied validates a patch duration. Nil passes; a supplied
// value must be at least 1. ozzo's Min skips zero values, which would
// let a zero duration through to the database constraint.
func positiveIfSupplied(value any) error {
	n, ok := value.(*int)
	if !ok || n == nil {
		return nil
	}
	if *n < 1 {
		return validation.NewError("validation_min_duration", "must be no less than 1")
	}
	return nil
}
