// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WalkRequest model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a request is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// The status-changing helpers are deliberately conditional: every UPDATE
// carries a WHERE clause naming the status the caller observed, so a
// concurrent writer that got there first makes the statement affect zero
// rows instead of clobbering the newer state. The service layer turns a
// zero-row result into the appropriate conflict error.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateWalkRequest inserts a new open walk request for the given dog.
// The request ID is a randomly generated UUID and CreatedAt is set to UTC.
func CreateWalkRequest(ctx context.Context, db *gorm.DB, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error) {
	r := &domain.WalkRequest{
		ID:              uuid.NewString(),
		DogID:           dogID,
		RequestedTime:   requestedTime,
		DurationMinutes: durationMinutes,
		Location:        location,
		Status:          domain.RequestOpen,
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetWalkRequest fetches a single walk request by ID. If the record does
// not exist, it returns ErrNotFound.
func GetWalkRequest(ctx context.Context, db *gorm.DB, id string) (*domain.WalkRequest, error) {
	var r domain.WalkRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListOpenRequests returns all open walk requests ordered deterministically
// (RequestedTime ASC, ID ASC) so the earliest walks surface first and ties
// resolve the same way on every call.
func ListOpenRequests(ctx context.Context, db *gorm.DB) ([]domain.WalkRequest, error) {
	var out []domain.WalkRequest
	err := db.WithContext(ctx).
		Where("status = ?", domain.RequestOpen).
		Order("requested_time ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountOpenRequests returns the total number of open walk requests.
func CountOpenRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.WalkRequest{}).
		Where("status = ?", domain.RequestOpen).
		Count(&total).Error
	return total, err
}

// ListOpenRequestsPage returns a paginated slice of open walk requests with
// the same deterministic ordering as ListOpenRequests. Use CountOpenRequests
// to obtain the total for pagination metadata.
func ListOpenRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.WalkRequest, error) {
	var out []domain.WalkRequest
	err := db.WithContext(ctx).
		Where("status = ?", domain.RequestOpen).
		Order("requested_time ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateRequestStatus moves a request from one observed status to another.
// It is a compare-and-swap: the UPDATE only matches while the row still
// holds the from status, so exactly one of any number of concurrent callers
// can win the transition. The returned count is the number of rows changed
// (0 or 1); callers decide what a lost race means for them.
func UpdateRequestStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.RequestStatus) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.WalkRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
