package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drakoRRR/airport-backend/internal/media"
)

// Media endpoints hit the document store directly; they are uncached.

// ListReviews handles GET /tours/{tourID}/reviews.
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")

	reviews, err := h.media.ReviewsByTour(r.Context(), tourID)
	if err != nil {
		h.log.Error("listing reviews failed", "tour_id", tourID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []media.Review{}
	}

	writeJSON(w, http.StatusOK, reviews)
}

// AddReview handles POST /tours/{tourID}/reviews.
func (h *Handlers) AddReview(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")

	var in media.ReviewInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	review, err := h.media.AddReview(r.Context(), tourID, in)
	if err != nil {
		h.log.Error("adding review failed", "tour_id", tourID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// ListImages handles GET /tours/{tourID}/images.
func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")

	images, err := h.media.ImagesByTour(r.Context(), tourID)
	if err != nil {
		h.log.Error("listing images failed", "tour_id", tourID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if images == nil {
		images = []media.Image{}
	}

	writeJSON(w, http.StatusOK, images)
}

// AddImage handles POST /tours/{tourID}/images.
func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")

	var in media.ImageInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	image, err := h.media.AddImage(r.Context(), tourID, in)
	if err != nil {
		h.log.Error("adding image failed", "tour_id", tourID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, image)
}

// GetTourMedia handles GET /tours/{tourID}/media.
// Reviews and images are fetched in parallel.
func (h *Handlers) GetTourMedia(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourID")

	result, err := h.aggregator.TourMedia(r.Context(), tourID)
	if err != nil {
		h.log.Error("aggregating tour media failed", "tour_id", tourID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
