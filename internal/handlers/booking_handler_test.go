package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	ucBooking "github.com/SereniteSpa01/spa-scheduler/internal/usecase/booking"
)

// ======================================================
// FAKES
// ======================================================

type stubLocker struct {
	allow bool

	locked   []string
	unlocked []string
}

func (l *stubLocker) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.locked = append(l.locked, key)
	return l.allow, nil
}

func (l *stubLocker) Unlock(_ context.Context, key string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

type stubSchedulingRepo struct {
	services map[uint]*models.Service

	createCalls int
}

func (r *stubSchedulingRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (r *stubSchedulingRepo) GetServiceVariation(_ context.Context, _, _ uint) (*models.ServiceVariation, error) {
	return nil, httperr.ErrBusiness("variation_not_found")
}

func (r *stubSchedulingRepo) GetClient(_ context.Context, _ uint) (*models.Client, error) {
	return nil, httperr.ErrBusiness("client_not_found")
}

func (r *stubSchedulingRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 1, Name: name, Phone: phone, Email: email}, nil
}

func (r *stubSchedulingRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	r.createCalls++
	bk.ID = 1
	return nil
}

func (r *stubSchedulingRepo) GetBooking(_ context.Context, _ uint) (*models.Booking, error) {
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *stubSchedulingRepo) SaveBooking(_ context.Context, _ *models.Booking) error { return nil }

func (r *stubSchedulingRepo) DeleteBooking(_ context.Context, _ uint) error { return nil }

func (r *stubSchedulingRepo) AssertNoTimeConflict(_ context.Context, _ uint, _, _ time.Time, _ uint) error {
	return nil
}

func (r *stubSchedulingRepo) AssertSlotSchedulable(_ context.Context, _ uint, _, _ time.Time) error {
	return nil
}

type nopBus struct{}

func (nopBus) Publish(_ context.Context, _ string, _ any) {}

// ======================================================
// HELPERS
// ======================================================

func testBookingHandler(locker *stubLocker, repo *stubSchedulingRepo) *BookingHandler {
	cfg := &config.Config{Timezone: "America/Toronto"}
	dispatcher := audit.NewDispatcher(audit.New(nil))

	return NewBookingHandler(
		nil,
		cfg,
		locker,
		ucBooking.NewCreateBooking(repo, dispatcher, nopBus{}, cfg.Timezone),
		ucBooking.NewUpdateBooking(repo, dispatcher, nopBus{}, cfg.Timezone),
		ucBooking.NewMoveBooking(repo, dispatcher, nopBus{}, cfg.Timezone),
		ucBooking.NewChangeStatus(repo, dispatcher, nopBus{}, cfg.Timezone),
		ucBooking.NewDeleteBooking(repo, dispatcher, nopBus{}),
	)
}

func postCreate(t *testing.T, h *BookingHandler, body, idemKey string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, "/api/me/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}
	c.Request = req
	c.Set(middleware.ContextUserID, uint(1))

	h.Create(c)
	return w
}

// ======================================================
// GARDE ANTI DOUBLE SOUMISSION
// ======================================================

const validCreateBody = `{
	"professional_id": 7,
	"client_name": "Marie Tremblay",
	"client_phone": "514-555-0101",
	"service_id": 1,
	"date": "2026-03-10",
	"time": "14:00"
}`

func TestCreate_FailureReleasesIdempotencyKey(t *testing.T) {
	locker := &stubLocker{allow: true}
	repo := &stubSchedulingRepo{services: map[uint]*models.Service{}}
	h := testBookingHandler(locker, repo)

	// service inexistant : la création échoue après la prise de la clé
	w := postCreate(t, h, validCreateBody, "key-123")

	if w.Code != 400 {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	// la clé doit être libérée pour qu'une resoumission corrigée passe
	if len(locker.unlocked) != 1 || locker.unlocked[0] != "key-123" {
		t.Fatalf("expected key-123 released, got %v", locker.unlocked)
	}
}

func TestCreate_SuccessKeepsIdempotencyKey(t *testing.T) {
	locker := &stubLocker{allow: true}
	repo := &stubSchedulingRepo{services: map[uint]*models.Service{
		1: {ID: 1, Name: "Massage suédois", DurationMin: 60, Active: true},
	}}
	h := testBookingHandler(locker, repo)

	w := postCreate(t, h, validCreateBody, "key-456")

	if w.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	// un succès laisse la clé vivre son TTL pour absorber les doubles clics
	if len(locker.unlocked) != 0 {
		t.Fatalf("key must not be released on success, got %v", locker.unlocked)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one create, got %d", repo.createCalls)
	}
}

func TestCreate_DuplicateSubmissionRejected(t *testing.T) {
	locker := &stubLocker{allow: false}
	repo := &stubSchedulingRepo{services: map[uint]*models.Service{
		1: {ID: 1, Name: "Massage suédois", DurationMin: 60, Active: true},
	}}
	h := testBookingHandler(locker, repo)

	w := postCreate(t, h, validCreateBody, "key-789")

	if w.Code != 409 {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if repo.createCalls != 0 {
		t.Fatalf("duplicate submission must not create, got %d", repo.createCalls)
	}
	if len(locker.unlocked) != 0 {
		t.Fatalf("rejected duplicate must not release the key, got %v", locker.unlocked)
	}
}
