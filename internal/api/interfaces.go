package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/drakoRRR/airport-backend/internal/media"
	"github.com/drakoRRR/airport-backend/internal/travel"
)

// TourRepo defines the tour storage operations needed by handlers.
type TourRepo interface {
	List(ctx context.Context) ([]travel.Tour, error)
	GetByID(ctx context.Context, id uuid.UUID) (*travel.Tour, error)
	Create(ctx context.Context, in travel.TourInput) (*travel.Tour, error)
	Update(ctx context.Context, id uuid.UUID, patch travel.TourPatch) (*travel.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) (*travel.Tour, error)
}

// BookingRepo defines the booking storage operations needed by handlers.
type BookingRepo interface {
	List(ctx context.Context) ([]travel.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*travel.Booking, error)
	Create(ctx context.Context, in travel.BookingInput) (*travel.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch travel.BookingPatch) (*travel.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (*travel.Booking, error)
}

// MediaStore defines the document store operations needed by handlers.
type MediaStore interface {
	ReviewsByTour(ctx context.Context, tourID string) ([]media.Review, error)
	AddReview(ctx context.Context, tourID string, in media.ReviewInput) (*media.Review, error)
	ImagesByTour(ctx context.Context, tourID string) ([]media.Image, error)
	AddImage(ctx context.Context, tourID string, in media.ImageInput) (*media.Image, error)
}

// MediaAggregator defines the combined per-tour media fetch.
type MediaAggregator interface {
	TourMedia(ctx context.Context, tourID string) (*media.TourMedia, error)
}
