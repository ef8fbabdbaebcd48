// Package services – ApplicationService
//
// This file implements the ApplicationService, which governs how walkers
// apply to open walk requests. It enforces the business rules (walker role,
// request existence, open status, one application per walker per request)
// and persists the application atomically. Service-level errors
// (e.g. ErrNotWalker, ErrRequestNotOpen, ErrDuplicateApplication) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// ApplicationService implements the use-cases around walk applications.
// It validates the operation (role, request state, uniqueness) and persists
// the application using the provided GORM handle. The service is
// context-aware and opens its own transaction per call.
type ApplicationService struct {
	// DB is the database handle used for all application operations.
	// The handle may be a plain *gorm.DB or a transaction-bound handle.
	DB *gorm.DB
}

// Apply records a pending application by walkerID for requestID.
//
// Semantics and validation:
//   - walkerID must reference a user with the walker role; otherwise
//     ErrNotWalker (ErrUserNotFound if the identity is unknown).
//   - requestID must exist; otherwise ErrRequestNotFound.
//   - The request must currently be open; otherwise ErrRequestNotOpen.
//   - A walker may apply to a given request at most once; a second apply
//     yields ErrDuplicateApplication.
//
// Concurrency & atomicity:
//   - The operation runs inside a transaction so the state check and the
//     insert are atomic. Two simultaneous applies with the same
//     (requestID, walkerID) are resolved by the unique index: exactly one
//     succeeds, the other maps to ErrDuplicateApplication.
func (s *ApplicationService) Apply(ctx context.Context, requestID, walkerID string) (*domain.WalkApplication, error) {
	var app *domain.WalkApplication

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := CanApply(ctx, tx, walkerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotWalker
		}

		req, err := repo.GetWalkRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if req.Status != domain.RequestOpen {
			return ErrRequestNotOpen
		}

		app, err = repo.CreateWalkApplication(ctx, tx, requestID, walkerID)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrDuplicateApplication
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ListForRequest returns every application submitted for requestID, in
// applied order. Used by the matching flow and the owner-facing listing.
func (s *ApplicationService) ListForRequest(ctx context.Context, requestID string) ([]domain.WalkApplication, error) {
	return repo.ListApplicationsForRequest(ctx, s.DB, requestID)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
