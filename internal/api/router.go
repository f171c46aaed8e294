package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// The health endpoint is unauthenticated; all entity routes require bearer
// auth, checked before any store or cache access happens.
// Rate limiting is applied globally: 60 requests per minute per IP.
func NewRouter(handlers *Handlers, token string, db, redisClient, mongoClient pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StripSlashes)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/health", HealthHandlerFunc(db, redisClient, mongoClient, log))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(token))

		r.Route("/tours", func(r chi.Router) {
			r.Get("/", handlers.ListTours)
			r.Post("/", handlers.CreateTour)
			r.Route("/{tourID}", func(r chi.Router) {
				r.Get("/", handlers.GetTour)
				r.Put("/", handlers.UpdateTour)
				r.Delete("/", handlers.DeleteTour)
				r.Get("/reviews", handlers.ListReviews)
				r.Post("/reviews", handlers.AddReview)
				r.Get("/images", handlers.ListImages)
				r.Post("/images", handlers.AddImage)
				r.Get("/media", handlers.GetTourMedia)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handlers.ListBookings)
			r.Post("/", handlers.CreateBooking)
			r.Route("/{bookingID}", func(r chi.Router) {
				r.Get("/", handlers.GetBooking)
				r.Put("/", handlers.UpdateBooking)
				r.Delete("/", handlers.DeleteBooking)
			})
		})
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
