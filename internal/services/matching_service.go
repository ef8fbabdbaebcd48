// Package services – MatchingService
//
// This file implements MatchingService, the component that resolves an open
// walk request to exactly one accepted walker. Acceptance is the only path
// from the open to the accepted status, and it is guarded by a conditional
// status update so two owners' clients (or a double-submitted form) can
// never both win: the request row flips open→accepted at most once, and all
// competing applications are rejected in the same transaction.
//
// Observability: Accept is OpenTelemetry-instrumented; the span carries the
// request, application and caller identifiers.

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MatchingService resolves pending applications against open requests.
type MatchingService struct {
	DB *gorm.DB
}

// Accept matches requestID to the walker behind applicationID, on behalf of
// ownerID. On success the request is accepted, the named application is
// accepted, and every other pending application for the request is rejected.
//
// Validation (in order):
//   - requestID must exist; otherwise ErrRequestNotFound.
//   - ownerID must own the request; otherwise ErrNotRequestOwner.
//   - The request must still be open; any observed non-open status means
//     another accept (or a cancel) already resolved it: ErrAlreadyMatched.
//   - applicationID must exist and belong to requestID; otherwise
//     ErrApplicationNotFound.
//   - The application must still be pending; otherwise
//     ErrApplicationNotPending. With an open request this only fires on
//     rows written outside the matching path.
//
// Concurrency contract: the whole operation runs in one transaction and the
// request flip is conditional on the open status. When two accepts race on
// the same request, exactly one commits; the loser observes zero affected
// rows and receives ErrAlreadyMatched with no partial effects.
func (s *MatchingService) Accept(ctx context.Context, ownerID, requestID, applicationID string) (*domain.WalkApplication, error) {
	tr := otel.Tracer("services/MatchingService")
	ctx, span := tr.Start(ctx, "Accept",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("application.id", applicationID),
			attribute.String("user.id", ownerID),
		),
	)
	defer span.End()

	var accepted *domain.WalkApplication

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := repo.GetWalkRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
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

		// Every caller who sees a resolved request lost the match, no matter
		// what happened to the application they point at.
		if req.Status != domain.RequestOpen {
			return ErrAlreadyMatched
		}

		app, err := repo.GetWalkApplication(ctx, tx, applicationID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if app.RequestID != requestID {
			return ErrApplicationNotFound
		}
		if app.Status != domain.ApplicationPending {
			return ErrApplicationNotPending
		}

		// Conditional flip: only an open request can be matched. Zero rows
		// means a concurrent accept (or cancel) got there first.
		n, err := repo.UpdateRequestStatus(ctx, tx, requestID, domain.RequestOpen, domain.RequestAccepted)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrAlreadyMatched
		}

		n, err = repo.AcceptApplication(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if n == 0 {
			// The pending check above ran in this transaction, so the only
			// way to land here is a concurrent resolution of the same row.
			return ErrAlreadyMatched
		}

		if err := repo.RejectOtherPending(ctx, tx, requestID, applicationID); err != nil {
			return err
		}

		app.Status = domain.ApplicationAccepted
		accepted = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}
