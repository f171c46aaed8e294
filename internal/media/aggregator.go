package media

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// reviewLister is the interface satisfied by Store.
type reviewLister interface {
	ReviewsByTour(ctx context.Context, tourID string) ([]Review, error)
}

// imageLister is the interface satisfied by Store.
type imageLister interface {
	ImagesByTour(ctx context.Context, tourID string) ([]Image, error)
}

// TourMedia bundles everything attached to a single tour.
type TourMedia struct {
	Reviews []Review `json:"reviews"`
	Images  []Image  `json:"images"`
}

// Aggregator fetches reviews and images for a tour in parallel.
type Aggregator struct {
	reviews reviewLister
	images  imageLister
	log     *slog.Logger
}

// NewAggregator constructs an Aggregator over the document store.
func NewAggregator(store *Store, log *slog.Logger) *Aggregator {
	return &Aggregator{reviews: store, images: store, log: log}
}

// NewAggregatorWithListers constructs an Aggregator with injectable listers (used in tests).
func NewAggregatorWithListers(r reviewLister, i imageLister, log *slog.Logger) *Aggregator {
	return &Aggregator{reviews: r, images: i, log: log}
}

// TourMedia fetches both collections in parallel using errgroup.
// A failed leg is non-fatal: it degrades to an empty list with a log entry.
func (a *Aggregator) TourMedia(ctx context.Context, tourID string) (*TourMedia, error) {
	g, gCtx := errgroup.WithContext(ctx)

	result := &TourMedia{
		Reviews: []Review{},
		Images:  []Image{},
	}

	g.Go(func() error {
		reviews, err := a.reviews.ReviewsByTour(gCtx, tourID)
		if err != nil {
			a.log.Warn("reviews fetch failed", "tour_id", tourID, "err", err)
			return nil
		}
		if reviews != nil {
			result.Reviews = reviews
		}
		return nil
	})

	g.Go(func() error {
		images, err := a.images.ImagesByTour(gCtx, tourID)
		if err != nil {
			a.log.Warn("images fetch failed", "tour_id", tourID, "err", err)
			return nil
		}
		if images != nil {
			result.Images = images
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
