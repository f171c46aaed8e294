package media

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user review of a tour, stored in the document store.
// The tour reference is a loose string, not a foreign key.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TourID    string             `bson:"tour_id" json:"tour_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   *string            `bson:"comment,omitempty" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ReviewInput carries the fields a client supplies when posting a review.
type ReviewInput struct {
	UserID  string  `json:"user_id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (in ReviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserID, validation.Required),
		validation.Field(&in.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// Image is a photo attached to a tour, stored in the document store.
type Image struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TourID      string             `bson:"tour_id" json:"tour_id"`
	URL         string             `bson:"url" json:"url"`
	Description *string            `bson:"description,omitempty" json:"description"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}

// ImageInput carries the fields a client supplies when attaching an image.
type ImageInput struct {
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

func (in ImageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.URL, validation.Required),
	)
}
