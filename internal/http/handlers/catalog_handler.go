// Public read-model HTTP handlers.
//
// This file exposes the unauthenticated listing endpoints:
//   - GET /dogs             (every dog with its owner's username)
//   - GET /walkers/summary  (per-walker activity aggregates)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListDogs godoc
// @ID          listDogs
// @Summary     List all dogs
// @Description Returns every registered dog with its size and owner username, ordered by name.
// @Tags        Catalog
// @Produce     json
//
// @Success     200  {array}  repo.DogWithOwner
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dogs [get]
func (h *Handlers) ListDogs(c *gin.Context) {
	dogs, err := h.sumSvc.Dogs(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, dogs)
}

// WalkerSummary godoc
// @ID          walkerSummary
// @Summary     Walker activity summary
// @Description Returns one row per walker with application, accepted-walk and rating aggregates. Walkers with no activity appear with zero counts and a null average.
// @Tags        Catalog
// @Produce     json
//
// @Success     200  {array}  repo.WalkerSummaryRow
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /walkers/summary [get]
func (h *Handlers) WalkerSummary(c *gin.Context) {
	rows, err := h.sumSvc.Walkers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}
