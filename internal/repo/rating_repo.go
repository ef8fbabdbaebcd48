// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WalkRating model.
//
// Error semantics:
//   - A second rating for the same request relies on the unique index on
//     request_id and surfaces as a raw DB error; the service layer maps it
//     to ErrDuplicateRating.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
)

// CreateWalkRating inserts the single rating row for a request. Range
// validation happens at the service layer; the CHECK constraint remains as
// defense in depth.
func CreateWalkRating(ctx context.Context, db *gorm.DB, requestID, walkerID, ownerID string, rating int, comments *string) (*domain.WalkRating, error) {
	r := &domain.WalkRating{
		ID:        uuid.NewString(),
		RequestID: requestID,
		WalkerID:  walkerID,
		OwnerID:   ownerID,
		Rating:    rating,
		Comments:  comments,
		RatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetWalkRating fetches the rating for a request, or ErrNotFound.
func GetWalkRating(ctx context.Context, db *gorm.DB, requestID string) (*domain.WalkRating, error) {
	var r domain.WalkRating
	if err := db.WithContext(ctx).Where("request_id = ?", requestID).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
