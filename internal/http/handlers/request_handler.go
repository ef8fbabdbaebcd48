// Walk-request HTTP handlers.
//
// This file exposes REST endpoints for walk-request resources:
//   - POST   /walk-requests                (create)
//   - GET    /walk-requests/open           (public listing, paginated, ETag support)
//   - POST   /walk-requests/{id}/cancel    (owner cancels)
//   - POST   /walk-requests/{id}/complete  (owner marks done)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
	"github.com/pawmatch/go-walk-backend/internal/services"
	"github.com/pawmatch/go-walk-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RequestService defines walk-request lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RequestService interface {
	// Create posts a new open walk request for one of ownerID's dogs.
	Create(ctx context.Context, ownerID, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error)
	// ListOpenPage returns a page of open requests and the total count.
	ListOpenPage(ctx context.Context, page, pageSize int) ([]domain.WalkRequest, int64, error)
	// Cancel withdraws a request on behalf of its owner.
	Cancel(ctx context.Context, requestID, actorID string) error
	// Complete marks a matched walk as done on behalf of its owner.
	Complete(ctx context.Context, requestID, actorID string) error
}

// ApplicationService defines walker application operations.
type ApplicationService interface {
	// Apply records a pending application by walkerID for requestID.
	Apply(ctx context.Context, requestID, walkerID string) (*domain.WalkApplication, error)
	// ListForRequest returns all applications for a request, applied order.
	ListForRequest(ctx context.Context, requestID string) ([]domain.WalkApplication, error)
}

// MatchingService defines the owner-side acceptance operation.
type MatchingService interface {
	// Accept matches a request to the walker behind applicationID.
	Accept(ctx context.Context, ownerID, requestID, applicationID string) (*domain.WalkApplication, error)
}

// RatingService defines post-walk rating operations.
type RatingService interface {
	// Rate records the owner's single rating for a completed request.
	Rate(ctx context.Context, ownerID, requestID string, rating int, comments *string) (*domain.WalkRating, error)
	// Get returns the rating recorded for a request, if any.
	Get(ctx context.Context, requestID string) (*domain.WalkRating, error)
}

// SummaryService defines the public read models.
type SummaryService interface {
	// Dogs returns every dog with its owner's username.
	Dogs(ctx context.Context) ([]repo.DogWithOwner, error)
	// Walkers returns per-walker activity aggregates.
	Walkers(ctx context.Context) ([]repo.WalkerSummaryRow, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for walk requests, applications, ratings,
// and the public read models. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	reqSvc   RequestService
	appSvc   ApplicationService
	matchSvc MatchingService
	rateSvc  RatingService
	sumSvc   SummaryService

	// IdemTTL bounds how long a stored Idempotency-Key record can be
	// replayed. Zero falls back to 24h.
	IdemTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(reqSvc RequestService, appSvc ApplicationService, matchSvc MatchingService, rateSvc RatingService, sumSvc SummaryService) *Handlers {
	return &Handlers{
		reqSvc:   reqSvc,
		appSvc:   appSvc,
		matchSvc: matchSvc,
		rateSvc:  rateSvc,
		sumSvc:   sumSvc,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to the "X-User-ID" header. An empty
// result means the caller is anonymous; mutating handlers must reject it.
// It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}

// requireUser resolves the caller identity or writes a 401 and reports false.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

//
// DTOs
//

// CreateWalkRequestRequest is the JSON payload for posting a walk request.
type CreateWalkRequestRequest struct {
	// DogID identifies the dog to be walked; it must belong to the caller.
	DogID string `json:"dog_id" binding:"required,uuid" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// RequestedTime is the desired walk start, RFC 3339.
	RequestedTime time.Time `json:"requested_time" binding:"required" example:"2026-06-10T08:00:00Z"`
	// DurationMinutes is the walk length in whole minutes (positive).
	DurationMinutes int `json:"duration_minutes" binding:"required" example:"45"`
	// Location is the free-text meeting spot (1–255 chars).
	Location string `json:"location" binding:"required,min=1,max=255" example:"Parklands & Beachside Ave"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListOpenRequestsResponse wraps a page of open walk requests and pagination
// information.
type ListOpenRequestsResponse struct {
	WalkRequests []domain.WalkRequest `json:"walk_requests"`
	Pagination   Pagination           `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// parseRequestID validates the {id} path param as a UUID or fails the
// request, reporting false.
func parseRequestID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request id must be a UUID")
		return "", false
	}
	return id, true
}

//
// Handlers
//

// CreateWalkRequest godoc
// @ID          createWalkRequest
// @Summary     Post a walk request
// @Description Creates an open walk request for one of the caller's dogs.
// @Tags        WalkRequests
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"  example(user123)
// @Param       body       body    handlers.CreateWalkRequestRequest  true  "Walk request payload"
//
// @Success     201  {object}  domain.WalkRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / validation error"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     403  {object}  handlers.ErrorResponse  "Dog belongs to another owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Dog not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /walk-requests [post]
func (h *Handlers) CreateWalkRequest(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}

	var req CreateWalkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	wr, err := h.reqSvc.Create(c.Request.Context(), uid, req.DogID, req.RequestedTime, req.DurationMinutes, req.Location)
	if err != nil {
		switch err {
		case services.ErrInvalidDuration:
			fail(c, http.StatusBadRequest, ErrCodeValidation, "duration_minutes must be positive")
		case services.ErrInvalidTime:
			fail(c, http.StatusBadRequest, ErrCodeValidation, "requested_time must be a valid RFC 3339 timestamp")
		case services.ErrEmptyLocation:
			fail(c, http.StatusBadRequest, ErrCodeValidation, "location must not be empty")
		case services.ErrDogNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "dog not found")
		case services.ErrNotDogOwner:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "dog belongs to another owner")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, wr)
}

// ListOpenRequests godoc
// @ID          listOpenRequests
// @Summary     List open walk requests (paginated)
// @Description Returns a page of open requests, earliest walk first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        WalkRequests
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListOpenRequestsResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/open [get]
func (h *Handlers) ListOpenRequests(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.reqSvc.(*services.RequestService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.OpenRequestsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"open-requests:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.reqSvc.ListOpenPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListOpenRequestsResponse{
		WalkRequests: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// CancelWalkRequest godoc
// @ID          cancelWalkRequest
// @Summary     Cancel a walk request
// @Description Withdraws an open or accepted request. Owner only.
// @Tags        WalkRequests
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"        example(user123)
// @Param       id         path    string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing identity"
// @Failure     403  {object} handlers.ErrorResponse "Not the request owner"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Illegal transition"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/cancel [post]
func (h *Handlers) CancelWalkRequest(c *gin.Context) {
	h.transition(c, h.reqSvc.Cancel)
}

// CompleteWalkRequest godoc
// @ID          completeWalkRequest
// @Summary     Complete a walk request
// @Description Marks an accepted walk as done. Owner only.
// @Tags        WalkRequests
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"        example(user123)
// @Param       id         path    string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing identity"
// @Failure     403  {object} handlers.ErrorResponse "Not the request owner"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Illegal transition"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/complete [post]
func (h *Handlers) CompleteWalkRequest(c *gin.Context) {
	h.transition(c, h.reqSvc.Complete)
}

// transition is the shared body of the owner-initiated lifecycle endpoints.
func (h *Handlers) transition(c *gin.Context, op func(ctx context.Context, requestID, actorID string) error) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	if err := op(c.Request.Context(), id, uid); err != nil {
		switch err {
		case services.ErrRequestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk request not found")
		case services.ErrNotRequestOwner:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the request owner may do this")
		case services.ErrInvalidTransition:
			fail(c, http.StatusConflict, ErrCodeInvalidState, "request state does not allow this transition")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
