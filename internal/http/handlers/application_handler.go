// Walk-application HTTP handlers.
//
// This file exposes REST endpoints for walker applications and the owner's
// acceptance step:
//   - POST /walk-requests/{id}/applications  (walker applies)
//   - GET  /walk-requests/{id}/applications  (lists bids for a request)
//   - POST /walk-requests/{id}/accept        (owner picks a walker)
//
// Handlers in this file are transport-thin: they validate input, delegate to
// application services, and translate domain/service errors into HTTP results.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawmatch/go-walk-backend/internal/http/middleware"
	"github.com/pawmatch/go-walk-backend/internal/repo"
	"github.com/pawmatch/go-walk-backend/internal/services"
)

// AcceptApplicationRequest is the JSON payload for accepting a walker's
// application.
type AcceptApplicationRequest struct {
	// ApplicationID names the winning application; it must belong to the
	// request in the path.
	ApplicationID string `json:"application_id" binding:"required,uuid" example:"fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b"`
}

// ApplyToRequest godoc
// @ID          applyToRequest
// @Summary     Apply to walk
// @Description Records the calling walker's application for an open request.
// @Tags        Applications
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"            example(walker123)
// @Param       id         path    string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     201  {object} domain.WalkApplication
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing identity"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not a walker"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Request closed or duplicate application"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/applications [post]
func (h *Handlers) ApplyToRequest(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	app, err := h.appSvc.Apply(c.Request.Context(), id, uid)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user")
		case services.ErrNotWalker:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only walkers may apply")
		case services.ErrRequestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk request not found")
		case services.ErrRequestNotOpen:
			fail(c, http.StatusConflict, ErrCodeInvalidState, "walk request is no longer open")
		case services.ErrDuplicateApplication:
			fail(c, http.StatusConflict, ErrCodeConflict, "walker already applied to this request")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, app)
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List applications for a request
// @Description Returns every application for the request, in applied order.
// @Tags        Applications
// @Produce     json
//
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     200  {array}  domain.WalkApplication
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	apps, err := h.appSvc.ListForRequest(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, apps)
}

// AcceptApplication godoc
// @ID          acceptApplication
// @Summary     Accept a walker's application
// @Description Matches the request to the named application. At most one accept ever succeeds per request; competing applications are rejected atomically.
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"            example(user123)
// @Param       id         path    string  true  "Request ID (UUID)"  format(uuid)
// @Param       body       body    handlers.AcceptApplicationRequest  true  "Winning application"
//
// @Success     200  {object} domain.WalkApplication
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing identity"
// @Failure     403  {object} handlers.ErrorResponse "Not the request owner"
// @Failure     404  {object} handlers.ErrorResponse "Request or application not found"
// @Failure     409  {object} handlers.ErrorResponse "Already matched or application resolved"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/accept [post]
func (h *Handlers) AcceptApplication(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	var req AcceptApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "application_id required (UUID)")
		return
	}
	if _, err := uuid.Parse(req.ApplicationID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "application_id must be a UUID")
		return
	}

	ctx := c.Request.Context()

	// Idempotency (replay path) – a retried accept with the same key returns
	// the application persisted by the first attempt instead of racing again.
	idemKey := idempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.matchSvc.(*services.MatchingService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, uid, id, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetWalkApplication(ctx, svc.DB, rec.ResultID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, prev)
					return
				}
			}
		}
	}

	app, err := h.matchSvc.Accept(ctx, uid, id, req.ApplicationID)
	if err != nil {
		switch err {
		case services.ErrRequestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk request not found")
		case services.ErrNotRequestOwner:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the request owner may accept")
		case services.ErrApplicationNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "application not found for this request")
		case services.ErrApplicationNotPending:
			fail(c, http.StatusConflict, ErrCodeInvalidState, "application already resolved")
		case services.ErrAlreadyMatched:
			fail(c, http.StatusConflict, ErrCodeConflict, "walk request already matched")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort; a lost record only costs the
	// retry its replay, the accept itself already committed.
	if idemKey != "" {
		if svc, okSvc := h.matchSvc.(*services.MatchingService); okSvc && svc.DB != nil {
			ttl := h.IdemTTL
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			_, _ = repo.CreateIdempotency(ctx, svc.DB, uid, id, idemKey, app.ID, http.StatusOK, ttl)
		}
	}

	ok(c, http.StatusOK, app)
}

// idempotencyKey reads the key stashed by the idempotency middleware, falling
// back to the raw header when the middleware is not installed.
func idempotencyKey(c *gin.Context) string {
	if k, okKey := middleware.GetIdempotencyKey(c); okKey {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}
