// Package services – authorization gate
//
// Stateless predicate helpers checking caller role and ownership against
// the operation requested. Every mutating service method consults these
// before touching any row; they hold no state of their own and are safe to
// call inside or outside a transaction (pass the tx handle as db).
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// CanManageDog reports whether userID owns the dog and may act on its
// behalf. Returns ErrDogNotFound when the dog does not exist.
func CanManageDog(ctx context.Context, db *gorm.DB, userID, dogID string) (bool, error) {
	dog, err := repo.GetDog(ctx, db, dogID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrDogNotFound
		}
		return false, err
	}
	return dog.OwnerID == userID, nil
}

// CanApply reports whether userID holds the walker role. Returns
// ErrUserNotFound when the identity references no known user.
func CanApply(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	u, err := repo.GetUser(ctx, db, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return u.Role == domain.RoleWalker, nil
}

// OwnsRequest reports whether userID owns the dog behind the walk request.
// Returns ErrRequestNotFound when the request does not exist.
func OwnsRequest(ctx context.Context, db *gorm.DB, userID, requestID string) (bool, error) {
	req, err := repo.GetWalkRequest(ctx, db, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrRequestNotFound
		}
		return false, err
	}
	return ownsRequestRow(ctx, db, userID, req)
}

// ownsRequestRow is the common ownership check for an already-loaded
// request row, used by services that fetched the row themselves.
func ownsRequestRow(ctx context.Context, db *gorm.DB, userID string, req *domain.WalkRequest) (bool, error) {
	dog, err := repo.GetDog(ctx, db, req.DogID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// A request pointing at a deleted dog is unownable.
			return false, nil
		}
		return false, err
	}
	return dog.OwnerID == userID, nil
}
