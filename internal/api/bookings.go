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

func bookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid booking id")
		return uuid.UUID{}, false
	}
	return id, true
}

// ListBookings handles GET /bookings.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cached, err := cache.Get[[]travel.Booking](ctx, h.cache, cache.AllBookingsKey)
	if err != nil {
		h.log.Warn("cache get failed", "key", cache.AllBookingsKey, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, *cached)
		return
	}

	bookings, err := h.bookings.List(ctx)
	if err != nil {
		h.log.Error("listing bookings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if bookings == nil {
		bookings = []travel.Booking{}
	}

	if err := cache.Set(ctx, h.cache, cache.AllBookingsKey, bookings); err != nil {
		h.log.Warn("cache set failed", "key", cache.AllBookingsKey, "err", err)
	}

	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{bookingID}.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	key := cache.BookingKey(id)

	cached, err := cache.Get[travel.Booking](ctx, h.cache, key)
	if err != nil {
		h.log.Warn("cache get failed", "key", key, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	booking, err := h.bookings.GetByID(ctx, id)
	if err != nil {
		h.log.Error("getting booking failed", "booking_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if booking == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	if err := cache.Set(ctx, h.cache, key, booking); err != nil {
		h.log.Warn("cache set failed", "key", key, "err", err)
	}

	writeJSON(w, http.StatusOK, booking)
}

// CreateBooking handles POST /bookings.
// Status defaults to "confirmed". Unknown client or tour references
// are rejected by the foreign keys and answer 422.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in travel.BookingInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Status == "" {
		in.Status = travel.StatusConfirmed
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	booking, err := h.bookings.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			writeError(w, http.StatusUnprocessableEntity, "unknown client or tour reference")
			return
		}
		h.log.Error("creating booking failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidate(r.Context(), cache.AllBookingsKey)
	writeJSON(w, http.StatusOK, booking)
}

// UpdateBooking handles PUT /bookings/{bookingID}.
func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	var patch travel.BookingPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	booking, err := h.bookings.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			writeError(w, http.StatusUnprocessableEntity, "unknown tour reference")
			return
		}
		h.log.Error("updating booking failed", "booking_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if booking == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	h.invalidate(r.Context(), cache.AllBookingsKey, cache.BookingKey(id))
	writeJSON(w, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /bookings/{bookingID}.
// Returns the pre-deletion snapshot; a second delete answers 404.
func (h *Handlers) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookings.Delete(r.Context(), id)
	if err != nil {
		h.log.Error("deleting booking failed", "booking_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if booking == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	h.invalidate(r.Context(), cache.AllBookingsKey, cache.BookingKey(id))
	writeJSON(w, http.StatusOK, booking)
}
