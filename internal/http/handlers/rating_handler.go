// Walk-rating HTTP handlers.
//
// This file exposes the REST endpoints for post-walk ratings:
//   - POST /walk-requests/{id}/rating  (owner rates the walker)
//   - GET  /walk-requests/{id}/rating  (fetch the recorded rating)
//
// Ratings are constrained to whole stars 1–5 and may carry optional
// free-text comments. The rated walker is always derived server-side from
// the accepted application.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawmatch/go-walk-backend/internal/repo"
	"github.com/pawmatch/go-walk-backend/internal/services"
)

// RateWalkRequest is the JSON payload for rating a completed walk.
type RateWalkRequest struct {
	// Rating is the star value, 1 (worst) to 5 (best), inclusive.
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"`
	// Comments optionally adds free-text feedback for the walker.
	Comments *string `json:"comments,omitempty" example:"Great job bob!"`
}

// RateWalk godoc
// @ID          rateWalk
// @Summary     Rate a completed walk
// @Description Records the owner's single 1–5 rating for the walker who completed the request.
// @Tags        Ratings
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID"            example(user123)
// @Param       id         path    string  true  "Request ID (UUID)"  format(uuid)
// @Param       body       body    handlers.RateWalkRequest  true  "Rating payload"
//
// @Success     201  {object} domain.WalkRating
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload or rating out of range"
// @Failure     401  {object} handlers.ErrorResponse "Missing identity"
// @Failure     403  {object} handlers.ErrorResponse "Not the request owner"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Walk not completed or already rated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/rating [post]
func (h *Handlers) RateWalk(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	var req RateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "rating must be an integer from 1 to 5")
		return
	}

	r, err := h.rateSvc.Rate(c.Request.Context(), uid, id, req.Rating, req.Comments)
	if err != nil {
		switch err {
		case services.ErrInvalidRating:
			fail(c, http.StatusBadRequest, ErrCodeValidation, "rating must be an integer from 1 to 5")
		case services.ErrRequestNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk request not found")
		case services.ErrNotRequestOwner:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the request owner may rate")
		case services.ErrRequestNotCompleted:
			fail(c, http.StatusConflict, ErrCodeInvalidState, "walk is not completed yet")
		case services.ErrNoAcceptedApplication:
			fail(c, http.StatusConflict, ErrCodeInvalidState, "walk has no accepted walker")
		case services.ErrDuplicateRating:
			fail(c, http.StatusConflict, ErrCodeConflict, "walk already rated")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, r)
}

// GetRating godoc
// @ID          getRating
// @Summary     Fetch the rating for a walk
// @Description Returns the rating recorded for the request, if one exists.
// @Tags        Ratings
// @Produce     json
//
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.WalkRating
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Request or rating not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walk-requests/{id}/rating [get]
func (h *Handlers) GetRating(c *gin.Context) {
	id, okID := parseRequestID(c)
	if !okID {
		return
	}

	r, err := h.rateSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk request not found")
		case errors.Is(err, repo.ErrNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "walk not rated yet")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, r)
}
