package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drakoRRR/airport-backend/internal/cache"
	"github.com/drakoRRR/airport-backend/internal/storage"
	"github.com/drakoRRR/airport-backend/internal/travel"
)

// tourID parses the {tourID} URL parameter, answering 422 on a malformed value.
func tourID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid tour id")
		return uuid.UUID{}, false
	}
	return id, true
}

// ListTours handles GET /tours.
// Cache hit short-circuits; miss falls through to the store and repopulates.
func (h *Handlers) ListTours(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cached, err := cache.Get[[]travel.Tour](ctx, h.cache, cache.AllToursKey)
	if err != nil {
		h.log.Warn("cache get failed", "key", cache.AllToursKey, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, *cached)
		return
	}

	tours, err := h.tours.List(ctx)
	if err != nil {
		h.log.Error("listing tours failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tours == nil {
		tours = []travel.Tour{}
	}

	if err := cache.Set(ctx, h.cache, cache.AllToursKey, tours); err != nil {
		h.log.Warn("cache set failed", "key", cache.AllToursKey, "err", err)
	}

	writeJSON(w, http.StatusOK, tours)
}

// GetTour handles GET /tours/{tourID}.
func (h *Handlers) GetTour(w http.ResponseWriter, r *http.Request) {
	id, ok := tourID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	key := cache.TourKey(id)

	cached, err := cache.Get[travel.Tour](ctx, h.cache, key)
	if err != nil {
		h.log.Warn("cache get failed", "key", key, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	tour, err := h.tours.GetByID(ctx, id)
	if err != nil {
		h.log.Error("getting tour failed", "tour_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tour == nil {
		writeError(w, http.StatusNotFound, "tour not found")
		return
	}

	if err := cache.Set(ctx, h.cache, key, tour); err != nil {
		h.log.Warn("cache set failed", "key", key, "err", err)
	}

	writeJSON(w, http.StatusOK, tour)
}

// CreateTour handles POST /tours.
// Invalidates the collection key only after the row is committed.
func (h *Handlers) CreateTour(w http.ResponseWriter, r *http.Request) {
	var in travel.TourInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tour, err := h.tours.Create(r.Context(), in)
	if err != nil {
		h.log.Error("creating tour failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidate(r.Context(), cache.AllToursKey)
	writeJSON(w, http.StatusOK, tour)
}

// UpdateTour handles PUT /tours/{tourID}.
func (h *Handlers) UpdateTour(w http.ResponseWriter, r *http.Request) {
	id, ok := tourID(w, r)
	if !ok {
		return
	}
	var patch travel.TourPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tour, err := h.tours.Update(r.Context(), id, patch)
	if err != nil {
		h.log.Error("updating tour failed", "tour_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tour == nil {
		writeError(w, http.StatusNotFound, "tour not found")
		return
	}

	h.invalidate(r.Context(), cache.AllToursKey, cache.TourKey(id))
	writeJSON(w, http.StatusOK, tour)
}

// DeleteTour handles DELETE /tours/{tourID}.
// Returns the pre-deletion snapshot. Tours with live bookings are
// protected by the RESTRICT constraint and answer 409.
func (h *Handlers) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id, ok := tourID(w, r)
	if !ok {
		return
	}

	tour, err := h.tours.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			writeError(w, http.StatusConflict, "tour has existing bookings")
			return
		}
		h.log.Error("deleting tour failed", "tour_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tour == nil {
		writeError(w, http.StatusNotFound, "tour not found")
		return
	}

	h.invalidate(r.Context(), cache.AllToursKey, cache.TourKey(id))
	writeJSON(w, http.StatusOK, tour)
}
