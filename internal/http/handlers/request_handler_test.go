package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
	"github.com/pawmatch/go-walk-backend/internal/services"
)

// ---------- test DB ----------

func newWalkDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:walk_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Enforce FKs and migrate schemas
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Dog{},
		&domain.WalkRequest{}, &domain.WalkApplication{}, &domain.WalkRating{},
		&domain.Idempotency{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Minimal shim implementing services.RequestRepo using the repo package
// (like router.go).
type testRequestRepo struct{}

func (testRequestRepo) CreateWalkRequest(ctx context.Context, db *gorm.DB, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error) {
	return repo.CreateWalkRequest(ctx, db, dogID, requestedTime, durationMinutes, location)
}

func (testRequestRepo) GetWalkRequest(ctx context.Context, db *gorm.DB, id string) (*domain.WalkRequest, error) {
	return repo.GetWalkRequest(ctx, db, id)
}

func (testRequestRepo) ListOpenRequests(ctx context.Context, db *gorm.DB) ([]domain.WalkRequest, error) {
	return repo.ListOpenRequests(ctx, db)
}

func (testRequestRepo) CountOpenRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountOpenRequests(ctx, db)
}

func (testRequestRepo) ListOpenRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.WalkRequest, error) {
	return repo.ListOpenRequestsPage(ctx, db, offset, limit)
}

func (testRequestRepo) UpdateRequestStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.RequestStatus) (int64, error) {
	return repo.UpdateRequestStatus(ctx, db, id, from, to)
}

// ---------- flexible service stubs ----------

type stubReqSvc struct {
	create   func(ctx context.Context, ownerID, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error)
	listPage func(ctx context.Context, page, pageSize int) ([]domain.WalkRequest, int64, error)
	cancel   func(ctx context.Context, requestID, actorID string) error
	complete func(ctx context.Context, requestID, actorID string) error
}

func (s stubReqSvc) Create(ctx context.Context, ownerID, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error) {
	if s.create != nil {
		return s.create(ctx, ownerID, dogID, requestedTime, durationMinutes, location)
	}
	return &domain.WalkRequest{ID: "r1", DogID: dogID, Status: domain.RequestOpen}, nil
}

func (s stubReqSvc) ListOpenPage(ctx context.Context, page, pageSize int) ([]domain.WalkRequest, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (s stubReqSvc) Cancel(ctx context.Context, requestID, actorID string) error {
	if s.cancel != nil {
		return s.cancel(ctx, requestID, actorID)
	}
	return nil
}

func (s stubReqSvc) Complete(ctx context.Context, requestID, actorID string) error {
	if s.complete != nil {
		return s.complete(ctx, requestID, actorID)
	}
	return nil
}

type stubAppSvc struct {
	apply func(ctx context.Context, requestID, walkerID string) (*domain.WalkApplication, error)
	list  func(ctx context.Context, requestID string) ([]domain.WalkApplication, error)
}

func (s stubAppSvc) Apply(ctx context.Context, requestID, walkerID string) (*domain.WalkApplication, error) {
	if s.apply != nil {
		return s.apply(ctx, requestID, walkerID)
	}
	return &domain.WalkApplication{ID: "a1", RequestID: requestID, WalkerID: walkerID, Status: domain.ApplicationPending}, nil
}

func (s stubAppSvc) ListForRequest(ctx context.Context, requestID string) ([]domain.WalkApplication, error) {
	if s.list != nil {
		return s.list(ctx, requestID)
	}
	return nil, nil
}

type stubMatchSvc struct {
	accept func(ctx context.Context, ownerID, requestID, applicationID string) (*domain.WalkApplication, error)
}

func (s stubMatchSvc) Accept(ctx context.Context, ownerID, requestID, applicationID string) (*domain.WalkApplication, error) {
	if s.accept != nil {
		return s.accept(ctx, ownerID, requestID, applicationID)
	}
	return &domain.WalkApplication{ID: applicationID, RequestID: requestID, Status: domain.ApplicationAccepted}, nil
}

type stubRateSvc struct {
	rate func(ctx context.Context, ownerID, requestID string, rating int, comments *string) (*domain.WalkRating, error)
	get  func(ctx context.Context, requestID string) (*domain.WalkRating, error)
}

func (s stubRateSvc) Rate(ctx context.Context, ownerID, requestID string, rating int, comments *string) (*domain.WalkRating, error) {
	if s.rate != nil {
		return s.rate(ctx, ownerID, requestID, rating, comments)
	}
	return &domain.WalkRating{ID: "rt1", RequestID: requestID, Rating: rating}, nil
}

func (s stubRateSvc) Get(ctx context.Context, requestID string) (*domain.WalkRating, error) {
	if s.get != nil {
		return s.get(ctx, requestID)
	}
	return nil, repo.ErrNotFound
}

type stubSumSvc struct {
	dogs    func(ctx context.Context) ([]repo.DogWithOwner, error)
	walkers func(ctx context.Context) ([]repo.WalkerSummaryRow, error)
}

func (s stubSumSvc) Dogs(ctx context.Context) ([]repo.DogWithOwner, error) {
	if s.dogs != nil {
		return s.dogs(ctx)
	}
	return nil, nil
}

func (s stubSumSvc) Walkers(ctx context.Context) ([]repo.WalkerSummaryRow, error) {
	if s.walkers != nil {
		return s.walkers(ctx)
	}
	return nil, nil
}

func newStubHandlers(reqSvc RequestService) *Handlers {
	return New(reqSvc, stubAppSvc{}, stubMatchSvc{}, stubRateSvc{}, stubSumSvc{})
}

// ---------- tests ----------

func Test_userID_and_clampPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// context value wins
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("userID", "ctx-user")
	c.Request.Header.Set("X-User-ID", "hdr-user")
	if got := userID(c); got != "ctx-user" {
		t.Fatalf("userID = %q; want ctx-user", got)
	}

	// header fallback
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.Header.Set("X-User-ID", "  hdr-user  ")
	if got := userID(c2); got != "hdr-user" {
		t.Fatalf("userID = %q; want hdr-user", got)
	}

	// no identity at all → empty
	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := userID(c3); got != "" {
		t.Fatalf("userID = %q; want empty", got)
	}

	// pagination clamping
	c4, _ := gin.CreateTestContext(httptest.NewRecorder())
	c4.Request = httptest.NewRequest(http.MethodGet, "/?page=-3&page_size=5000", nil)
	page, size := clampPagination(c4)
	if page != 1 || size != 100 {
		t.Fatalf("clampPagination = (%d,%d); want (1,100)", page, size)
	}
}

func TestCreateWalkRequest_Unauthorized_BadJSON_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newStubHandlers(stubReqSvc{})

	r := gin.New()
	r.POST("/walk-requests", h.CreateWalkRequest)

	// No identity → 401 before any parsing.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/walk-requests", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status=%d, want 401", w.Code)
	}

	// Malformed payload → 400.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/walk-requests", bytes.NewBufferString(`{"dog_id":`))
	req.Header.Set("X-User-ID", "u-123")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d, want 400", w.Code)
	}

	// Valid payload → 201 with the created resource.
	body := fmt.Sprintf(`{"dog_id":%q,"requested_time":"2026-06-10T08:00:00Z","duration_minutes":45,"location":"Parklands"}`, uuid.NewString())
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/walk-requests", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "u-123")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status=%d, want 201. body=%s", w.Code, w.Body.String())
	}
	var wr domain.WalkRequest
	if err := json.Unmarshal(w.Body.Bytes(), &wr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if wr.Status != domain.RequestOpen {
		t.Fatalf("status = %q; want open", wr.Status)
	}
}

func TestCreateWalkRequest_ErrorMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid_duration", services.ErrInvalidDuration, http.StatusBadRequest},
		{"invalid_time", services.ErrInvalidTime, http.StatusBadRequest},
		{"empty_location", services.ErrEmptyLocation, http.StatusBadRequest},
		{"dog_not_found", services.ErrDogNotFound, http.StatusNotFound},
		{"not_dog_owner", services.ErrNotDogOwner, http.StatusForbidden},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := newStubHandlers(stubReqSvc{
				create: func(ctx context.Context, ownerID, dogID string, _ time.Time, _ int, _ string) (*domain.WalkRequest, error) {
					if ownerID != "u-123" {
						t.Fatalf("ownerID = %q; want u-123", ownerID)
					}
					return nil, tc.err
				},
			})
			r := gin.New()
			r.POST("/walk-requests", h.CreateWalkRequest)

			body := fmt.Sprintf(`{"dog_id":%q,"requested_time":"2026-06-10T08:00:00Z","duration_minutes":45,"location":"Parklands"}`, uuid.NewString())
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/walk-requests", bytes.NewBufferString(body))
			req.Header.Set("X-User-ID", "u-123")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d. body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code == "" || er.Message == "" {
				t.Fatalf("error envelope missing fields: %+v", er)
			}
		})
	}
}

func TestListOpenRequests_ETag304_and_SuccessPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newWalkDB(t)

	owner := &domain.User{ID: uuid.NewString(), Username: "alice", Email: "alice@example.com", Role: domain.RoleOwner}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	dog := &domain.Dog{ID: uuid.NewString(), OwnerID: owner.ID, Name: "Rex", Size: domain.SizeSmall}
	if err := db.Create(dog).Error; err != nil {
		t.Fatalf("seed dog: %v", err)
	}
	if _, err := repo.CreateWalkRequest(context.Background(), db, dog.ID, time.Now().Add(time.Hour).UTC(), 30, "Parklands"); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	svc := services.NewRequestService(db, testRequestRepo{})
	h := newStubHandlers(svc)
	r := gin.New()
	r.GET("/walk-requests/open", h.ListOpenRequests)

	// First request: 200 with ETag and one item.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/walk-requests/open", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200. body=%s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}
	var resp ListOpenRequestsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.WalkRequests) != 1 || resp.Pagination.Total != 1 {
		t.Fatalf("page = %+v; want one open request", resp.Pagination)
	}

	// Replay with If-None-Match → 304.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/walk-requests/open", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional: status=%d, want 304", w.Code)
	}
}

func TestTransitionEndpoints_Mappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not_found", services.ErrRequestNotFound, http.StatusNotFound},
		{"forbidden", services.ErrNotRequestOwner, http.StatusForbidden},
		{"invalid_state", services.ErrInvalidTransition, http.StatusConflict},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
		{"success", nil, http.StatusNoContent},
	}

	id := uuid.NewString()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := newStubHandlers(stubReqSvc{
				cancel: func(ctx context.Context, requestID, actorID string) error {
					if requestID != id || actorID != "u-123" {
						t.Fatalf("got (%q,%q); want (%q,u-123)", requestID, actorID, id)
					}
					return tc.err
				},
			})
			r := gin.New()
			r.POST("/walk-requests/:id/cancel", h.CancelWalkRequest)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/walk-requests/"+id+"/cancel", nil)
			req.Header.Set("X-User-ID", "u-123")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d. body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}

	// Non-UUID path param is rejected before the service runs.
	h := newStubHandlers(stubReqSvc{
		cancel: func(ctx context.Context, requestID, actorID string) error {
			t.Fatalf("service should not be called for bad id")
			return nil
		},
	})
	r := gin.New()
	r.POST("/walk-requests/:id/cancel", h.CancelWalkRequest)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/walk-requests/not-a-uuid/cancel", nil)
	req.Header.Set("X-User-ID", "u-123")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d, want 400", w.Code)
	}
}
