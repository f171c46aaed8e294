package media

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect creates a Mongo client and verifies connectivity with a ping.
func Connect(ctx context.Context, mongoURL string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// Store holds the reviews and images collections. Entries here are
// uncached and outside the cache consistency contract.
type Store struct {
	reviews *mongo.Collection
	images  *mongo.Collection
}

// NewStore constructs a Store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		reviews: db.Collection("reviews"),
		images:  db.Collection("images"),
	}
}

// ReviewsByTour returns all reviews for the given tour, oldest first.
func (s *Store) ReviewsByTour(ctx context.Context, tourID string) ([]Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.reviews.Find(ctx, bson.M{"tour_id": tourID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding reviews for tour %s: %w", tourID, err)
	}

	var reviews []Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decoding reviews for tour %s: %w", tourID, err)
	}
	return reviews, nil
}

// AddReview inserts a review for the given tour, assigning its identifier
// and creation timestamp, and returns the stored document.
func (s *Store) AddReview(ctx context.Context, tourID string, in ReviewInput) (*Review, error) {
	r := Review{
		ID:        primitive.NewObjectID(),
		TourID:    tourID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.reviews.InsertOne(ctx, r); err != nil {
		return nil, fmt.Errorf("inserting review for tour %s: %w", tourID, err)
	}
	return &r, nil
}

// ImagesByTour returns all images for the given tour, oldest first.
func (s *Store) ImagesByTour(ctx context.Context, tourID string) ([]Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
	cur, err := s.images.Find(ctx, bson.M{"tour_id": tourID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding images for tour %s: %w", tourID, err)
	}

	var images []Image
	if err := cur.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("decoding images for tour %s: %w", tourID, err)
	}
	return images, nil
}

// AddImage inserts an image for the given tour, assigning its identifier
// and upload timestamp, and returns the stored document.
func (s *Store) AddImage(ctx context.Context, tourID string, in ImageInput) (*Image, error) {
	img := Image{
		ID:          primitive.NewObjectID(),
		TourID:      tourID,
		URL:         in.URL,
		Description: in.Description,
		UploadedAt:  time.Now().UTC(),
	}

	if _, err := s.images.InsertOne(ctx, img); err != nil {
		return nil, fmt.Errorf("inserting image for tour %s: %w", tourID, err)
	}
	return &img, nil
}
