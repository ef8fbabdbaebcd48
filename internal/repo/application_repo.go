// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WalkApplication model.
//
// Error semantics:
//   - Duplicate applications (same request_id, walker_id) rely on the
//     database unique constraint and surface as a raw DB error. The service
//     layer translates that into ErrDuplicateApplication.
//   - The status-changing helpers are conditional on the pending status so
//     a terminal application can never be flipped back or re-resolved.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
)

// CreateWalkApplication inserts a pending application by walkerID for the
// given request. The (request_id, walker_id) pair must be unique, enforced
// by the database schema; a violation propagates as a raw DB error.
func CreateWalkApplication(ctx context.Context, db *gorm.DB, requestID, walkerID string) (*domain.WalkApplication, error) {
	a := &domain.WalkApplication{
		ID:        uuid.NewString(),
		RequestID: requestID,
		WalkerID:  walkerID,
		Status:    domain.ApplicationPending,
		AppliedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetWalkApplication fetches an application by ID, or ErrNotFound.
func GetWalkApplication(ctx context.Context, db *gorm.DB, id string) (*domain.WalkApplication, error) {
	var a domain.WalkApplication
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListApplicationsForRequest returns all applications for a request ordered
// deterministically (AppliedAt ASC, ID ASC).
func ListApplicationsForRequest(ctx context.Context, db *gorm.DB, requestID string) ([]domain.WalkApplication, error) {
	var out []domain.WalkApplication
	err := db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("applied_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetAcceptedApplication returns the sole accepted application for a
// request, or ErrNotFound if the request was never matched.
func GetAcceptedApplication(ctx context.Context, db *gorm.DB, requestID string) (*domain.WalkApplication, error) {
	var a domain.WalkApplication
	err := db.WithContext(ctx).
		Where("request_id = ? AND status = ?", requestID, domain.ApplicationAccepted).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AcceptApplication marks the named application accepted, guarded on its
// current status still being pending. Returns the number of rows changed
// (0 when the application was already resolved by a concurrent caller).
func AcceptApplication(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.WalkApplication{}).
		Where("id = ? AND status = ?", id, domain.ApplicationPending).
		Updates(map[string]any{"status": domain.ApplicationAccepted, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// RejectOtherPending marks every pending application for the request other
// than acceptedID as rejected. Terminal applications are untouched.
func RejectOtherPending(ctx context.Context, db *gorm.DB, requestID, acceptedID string) error {
	return db.WithContext(ctx).
		Model(&domain.WalkApplication{}).
		Where("request_id = ? AND id <> ? AND status = ?", requestID, acceptedID, domain.ApplicationPending).
		Updates(map[string]any{"status": domain.ApplicationRejected, "updated_at": time.Now().UTC()}).Error
}
