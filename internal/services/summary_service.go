// Package services – SummaryService
//
// This file implements SummaryService, the read-model component behind the
// public listings: the dogs roster (each dog with its owner's username) and
// the per-walker activity summary (application counts, accepted walks and
// average rating). It is a thin orchestration layer over the repo-level
// aggregate queries; no business rules are enforced here.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// SummaryService serves the cross-entity read models.
type SummaryService struct {
	DB *gorm.DB
}

// Dogs returns every dog with its size and owner username, ordered by name.
func (s *SummaryService) Dogs(ctx context.Context) ([]repo.DogWithOwner, error) {
	return repo.ListDogsWithOwners(ctx, s.DB)
}

// Walkers returns one row per walker with application, accepted-walk and
// rating aggregates. Walkers with no activity appear with zero counts and a
// nil average.
func (s *SummaryService) Walkers(ctx context.Context) ([]repo.WalkerSummaryRow, error) {
	return repo.WalkerSummary(ctx, s.DB)
}
