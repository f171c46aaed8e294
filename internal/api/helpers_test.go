package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/drakoRRR/airport-backend/internal/api"
	"github.com/drakoRRR/airport-backend/internal/cache"
	"github.com/drakoRRR/airport-backend/internal/media"
	"github.com/drakoRRR/airport-backend/internal/travel"
)

const testToken = "secret-token"

// ---- mock repositories ----

type mockTourRepo struct {
	listFn   func(ctx context.Context) ([]travel.Tour, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*travel.Tour, error)
	createFn func(ctx context.Context, in travel.TourInput) (*travel.Tour, error)
	updateFn func(ctx context.Context, id uuid.UUID, patch travel.TourPatch) (*travel.Tour, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (*travel.Tour, error)
}

func (m *mockTourRepo) List(ctx context.Context) ([]travel.Tour, error) { return m.listFn(ctx) }
func (m *mockTourRepo) GetByID(ctx context.Context, id uuid.UUID) (*travel.Tour, error) {
	return m.getFn(ctx, id)
}
func (m *mockTourRepo) Create(ctx context.Context, in travel.TourInput) (*travel.Tour, error) {
	return m.createFn(ctx, in)
}
func (m *mockTourRepo) Update(ctx context.Context, id uuid.UUID, patch travel.TourPatch) (*travel.Tour, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockTourRepo) Delete(ctx context.Context, id uuid.UUID) (*travel.Tour, error) {
	return m.deleteFn(ctx, id)
}

type mockBookingRepo struct {
	listFn   func(ctx context.Context) ([]travel.Booking, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*travel.Booking, error)
	createFn func(ctx context.Context, in travel.BookingInput) (*travel.Booking, error)
	updateFn func(ctx context.Context, id uuid.UUID, patch travel.BookingPatch) (*travel.Booking, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (*travel.Booking, error)
}

func (m *mockBookingRepo) List(ctx context.Context) ([]travel.Booking, error) { return m.listFn(ctx) }
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*travel.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingRepo) Create(ctx context.Context, in travel.BookingInput) (*travel.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingRepo) Update(ctx context.Context, id uuid.UUID, patch travel.BookingPatch) (*travel.Booking, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) (*travel.Booking, error) {
	return m.deleteFn(ctx, id)
}

type mockMediaStore struct {
	reviewsFn   func(ctx context.Context, tourID string) ([]media.Review, error)
	addReviewFn func(ctx context.Context, tourID string, in media.ReviewInput) (*media.Review, error)
	imagesFn    func(ctx context.Context, tourID string) ([]media.Image, error)
	addImageFn  func(ctx context.Context, tourID string, in media.ImageInput) (*media.Image, error)
}

func (m *mockMediaStore) ReviewsByTour(ctx context.Context, tourID string) ([]media.Review, error) {
	return m.reviewsFn(ctx, tourID)
}
func (m *mockMediaStore) AddReview(ctx context.Context, tourID string, in media.ReviewInput) (*media.Review, error) {
	return m.addReviewFn(ctx, tourID, in)
}
func (m *mockMediaStore) ImagesByTour(ctx context.Context, tourID string) ([]media.Image, error) {
	return m.imagesFn(ctx, tourID)
}
func (m *mockMediaStore) AddImage(ctx context.Context, tourID string, in media.ImageInput) (*media.Image, error) {
	return m.addImageFn(ctx, tourID, in)
}

type mockAggregator struct {
	tourMediaFn func(ctx context.Context, tourID string) (*media.TourMedia, error)
}

func (m *mockAggregator) TourMedia(ctx context.Context, tourID string) (*media.TourMedia, error) {
	return m.tourMediaFn(ctx, tourID)
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// ---- harness ----

type testEnv struct {
	router http.Handler
	cache  *cache.Cache
	redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T, tours api.TourRepo, bookings api.BookingRepo, mediaStore api.MediaStore, aggregator api.MediaAggregator) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.New(client, time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := api.NewHandlers(tours, bookings, mediaStore, aggregator, c, log)
	router := api.NewRouter(handlers, testToken, &mockPinger{}, &mockPinger{}, &mockPinger{}, log)

	return &testEnv{router: router, cache: c, redis: mr}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// ---- fixtures ----

func sampleTour() *travel.Tour {
	desc := "A week in Paris"
	now := time.Now().UTC().Truncate(time.Second)
	return &travel.Tour{
		ID:          uuid.New(),
		Destination: "Paris",
		Duration:    7,
		Cost:        1200.00,
		Transport:   "Plane",
		Hotel:       "Hilton",
		Description: &desc,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
}

func sampleBooking() *travel.Booking {
	now := time.Now().UTC().Truncate(time.Second)
	return &travel.Booking{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		TourID:      uuid.New(),
		Status:      travel.StatusConfirmed,
		BookingDate: &now,
	}
}

// failingTourRepo fails the test if any method is reached.
func failingTourRepo(t *testing.T) *mockTourRepo {
	fail := func() { t.Error("tour repository should not be reached") }
	return &mockTourRepo{
		listFn:   func(context.Context) ([]travel.Tour, error) { fail(); return nil, nil },
		getFn:    func(context.Context, uuid.UUID) (*travel.Tour, error) { fail(); return nil, nil },
		createFn: func(context.Context, travel.TourInput) (*travel.Tour, error) { fail(); return nil, nil },
		updateFn: func(context.Context, uuid.UUID, travel.TourPatch) (*travel.Tour, error) {
			fail()
			return nil, nil
		},
		deleteFn: func(context.Context, uuid.UUID) (*travel.Tour, error) { fail(); return nil, nil },
	}
}
