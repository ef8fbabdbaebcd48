// Package services – RatingService
//
// This file implements RatingService, which records the owner's single
// post-walk rating for a completed request. It validates the rating range,
// verifies ownership and completion, resolves the accepted walker, and
// persists the rating. Exactly one rating per request is enforced by the
// database unique index; a second attempt maps to ErrDuplicateRating.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// RatingService records post-walk ratings for completed requests.
type RatingService struct {
	DB *gorm.DB
}

// Rate records a rating (1..5) with optional comments for requestID on
// behalf of ownerID. The rated walker is derived from the accepted
// application, never supplied by the caller.
//
// Validation (in order):
//   - rating must be within [domain.RatingMin, domain.RatingMax];
//     otherwise ErrInvalidRating.
//   - requestID must exist; otherwise ErrRequestNotFound.
//   - ownerID must own the request; otherwise ErrNotRequestOwner.
//   - The request must be completed; otherwise ErrRequestNotCompleted.
//   - The request must have an accepted application; otherwise
//     ErrNoAcceptedApplication.
//   - At most one rating per request; a second yields ErrDuplicateRating.
func (s *RatingService) Rate(ctx context.Context, ownerID, requestID string, rating int, comments *string) (*domain.WalkRating, error) {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, ErrInvalidRating
	}
	if comments != nil {
		c := strings.TrimSpace(*comments)
		if c == "" {
			comments = nil
		} else {
			comments = &c
		}
	}

	var out *domain.WalkRating

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := repo.GetWalkRequest(ctx, tx, requestID)
		if err != nil {
			if isNotFound(err) {
				return ErrRequestNotFound
			}
			return err
		}

		ok, err := ownsRequestRow(ctx, tx, ownerID, req)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotRequestOwner
		}

		if req.Status != domain.RequestCompleted {
			return ErrRequestNotCompleted
		}

		app, err := repo.GetAcceptedApplication(ctx, tx, requestID)
		if err != nil {
			if isNotFound(err) {
				return ErrNoAcceptedApplication
			}
			return err
		}

		out, err = repo.CreateWalkRating(ctx, tx, requestID, app.WalkerID, ownerID, rating, comments)
		if err != nil {
			// Map duplicate key to a stable service error.
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrDuplicateRating
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the rating previously recorded for requestID, or
// ErrRequestNotFound when the request does not exist and repo.ErrNotFound
// when it exists but has no rating yet.
func (s *RatingService) Get(ctx context.Context, requestID string) (*domain.WalkRating, error) {
	if _, err := repo.GetWalkRequest(ctx, s.DB, requestID); err != nil {
		if isNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return repo.GetWalkRating(ctx, s.DB, requestID)
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	// Fallback to GORM's sentinel.
	return errors.Is(err, gorm.ErrRecordNotFound)
}
