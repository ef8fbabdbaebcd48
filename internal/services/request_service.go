// Package services – RequestService
//
// This file implements the RequestService, which owns the walk-request
// lifecycle: creation, the open-request listing, and the owner-initiated
// transitions (cancel, complete). It validates and normalizes input,
// enforces ownership through the authorization predicates, and performs
// every status change as a conditional update so concurrent writers cannot
// clobber each other. The open→accepted edge is deliberately unreachable
// from here; only MatchingService performs it.
//
// Service-level errors (e.g. ErrNotDogOwner, ErrInvalidDuration,
// ErrInvalidTransition) are returned for predictable cases so handlers can
// map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// RequestRepo defines the repository contract required by RequestService.
// Implementations are responsible for persistence of walk-request rows.
type RequestRepo interface {
	// CreateWalkRequest inserts a new open request for the given dog.
	CreateWalkRequest(ctx context.Context, db *gorm.DB, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error)

	// GetWalkRequest fetches a request by ID or repo.ErrNotFound.
	GetWalkRequest(ctx context.Context, db *gorm.DB, id string) (*domain.WalkRequest, error)

	// ListOpenRequests returns all open requests, earliest walk first.
	ListOpenRequests(ctx context.Context, db *gorm.DB) ([]domain.WalkRequest, error)

	// CountOpenRequests returns the total open-request count for pagination.
	CountOpenRequests(ctx context.Context, db *gorm.DB) (int64, error)

	// ListOpenRequestsPage returns a page of open requests.
	ListOpenRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.WalkRequest, error)

	// UpdateRequestStatus conditionally moves a request between statuses.
	UpdateRequestStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.RequestStatus) (int64, error)
}

// RequestService provides walk-request lifecycle operations. It enforces
// validation and ownership rules and delegates persistence to the repo.
type RequestService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the walk-request repository used by this service.
	Repo RequestRepo

	// LocationMaxLen caps stored locations by rune length.
	LocationMaxLen int
	// LocationLocale drives the title-casing applied to stored locations.
	LocationLocale language.Tag
	// DefaultPageSize is used by ListOpenPage when the caller passes an
	// invalid page size.
	DefaultPageSize int
}

// NewRequestService constructs a RequestService with sane defaults.
func NewRequestService(db *gorm.DB, r RequestRepo) *RequestService {
	return &RequestService{
		DB:              db,
		Repo:            r,
		LocationMaxLen:  255,
		LocationLocale:  language.English,
		DefaultPageSize: 20,
	}
}

// Create posts a new walk request for dogID on behalf of ownerID.
//
// Semantics and validation:
//   - dogID must exist (ErrDogNotFound) and belong to ownerID (ErrNotDogOwner).
//   - durationMinutes must be positive (ErrInvalidDuration).
//   - requestedTime must be non-zero (ErrInvalidTime); unparseable values
//     never reach this layer because the transport binds RFC 3339.
//   - location must be non-empty after normalization (ErrEmptyLocation).
//
// The resulting request is always in the open state.
func (s *RequestService) Create(ctx context.Context, ownerID, dogID string, requestedTime time.Time, durationMinutes int, location string) (*domain.WalkRequest, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if requestedTime.IsZero() {
		return nil, ErrInvalidTime
	}
	location = normalizeLocation(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}
	location = cases.Title(s.LocationLocale).String(location)

	ok, err := CanManageDog(ctx, s.DB, ownerID, dogID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotDogOwner
	}

	return s.Repo.CreateWalkRequest(ctx, s.DB, dogID, requestedTime.UTC(), durationMinutes, s.clip(location))
}

// ListOpen returns all open walk requests ordered by requested time
// ascending (earliest walks surface first), ties broken by request id.
// Prefer ListOpenPage for scalability on large datasets.
func (s *RequestService) ListOpen(ctx context.Context) ([]domain.WalkRequest, error) {
	return s.Repo.ListOpenRequests(ctx, s.DB)
}

// ListOpenPage returns a page of open walk requests and the total count.
// It applies defaults for invalid page/pageSize.
func (s *RequestService) ListOpenPage(ctx context.Context, page, pageSize int) ([]domain.WalkRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.DefaultPageSize
		if pageSize <= 0 {
			pageSize = 20
		}
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountOpenRequests(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.WalkRequest{}, 0, nil
	}

	items, err := s.Repo.ListOpenRequestsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Cancel moves a request to cancelled on behalf of actorID. Legal from
// open (withdrawing an unmatched request) and from accepted (calling off a
// matched walk).
func (s *RequestService) Cancel(ctx context.Context, requestID, actorID string) error {
	return s.transition(ctx, requestID, actorID, domain.RequestCancelled)
}

// Complete marks a matched walk as completed on behalf of actorID. Legal
// from accepted only.
func (s *RequestService) Complete(ctx context.Context, requestID, actorID string) error {
	return s.transition(ctx, requestID, actorID, domain.RequestCompleted)
}

// transition applies an owner-initiated lifecycle edge. The caller must own
// the dog behind the request; the edge must be legal from the status the
// caller observed; and the final update is conditional on that observed
// status, so a concurrent transition makes this one fail with
// ErrInvalidTransition instead of overwriting newer state.
func (s *RequestService) transition(ctx context.Context, requestID, actorID string, target domain.RequestStatus) error {
	req, err := s.Repo.GetWalkRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	owns, err := ownsRequestRow(ctx, s.DB, actorID, req)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotRequestOwner
	}

	if !req.Status.CanTransition(target) {
		return ErrInvalidTransition
	}

	n, err := s.Repo.UpdateRequestStatus(ctx, s.DB, requestID, req.Status, target)
	if err != nil {
		return err
	}
	if n == 0 {
		// Someone else moved the request first; the edge we validated no
		// longer exists.
		return ErrInvalidTransition
	}
	return nil
}

// clip truncates a location to the configured maximum rune length.
func (s *RequestService) clip(location string) string {
	if s.LocationMaxLen > 0 && utf8.RuneCountInString(location) > s.LocationMaxLen {
		return string([]rune(location)[:s.LocationMaxLen])
	}
	return location
}

// normalizeLocation trims whitespace and collapses runs of whitespace to a
// single space.
func normalizeLocation(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
