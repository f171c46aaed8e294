package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/drakoRRR/airport-backend/internal/cache"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	tours      TourRepo
	bookings   BookingRepo
	media      MediaStore
	aggregator MediaAggregator
	cache      *cache.Cache
	log        *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(tours TourRepo, bookings BookingRepo, media MediaStore, aggregator MediaAggregator, c *cache.Cache, log *slog.Logger) *Handlers {
	return &Handlers{
		tours:      tours,
		bookings:   bookings,
		media:      media,
		aggregator: aggregator,
		cache:      c,
		log:        log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes the request body into v, answering 422 on malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return false
	}
	return true
}

// invalidate deletes cache keys after a committed write. Cache failures
// never fail the request; the TTL bounds the resulting staleness.
func (h *Handlers) invalidate(ctx context.Context, keys ...string) {
	if err := h.cache.Invalidate(ctx, keys...); err != nil {
		h.log.Warn("cache invalidation failed", "keys", keys, "err", err)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks connectivity
// to Postgres, Redis, and Mongo. Returns 200 if all ok, 503 otherwise.
func HealthHandlerFunc(db, redis, mongo pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{"db": "ok", "redis": "ok", "mongo": "ok"}

		for name, p := range map[string]pinger{"db": db, "redis": redis, "mongo": mongo} {
			if err := p.Ping(ctx); err != nil {
				log.Error("health check ping failed", "target", name, "err", err)
				checks[name] = "error"
				status = http.StatusServiceUnavailable
			}
		}

		if status == http.StatusOK {
			checks["status"] = "ok"
		} else {
			checks["status"] = "degraded"
		}

		writeJSON(w, status, checks)
	}
}
