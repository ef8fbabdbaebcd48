// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer and for the
// walker summary read model. Each function is context-aware and safe to call
// from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
)

// OpenRequestsStats returns aggregate metadata for the open-request listing:
// the total number of open rows and the maximum UpdatedAt timestamp among
// them. When there are no open requests, the returned count is 0 and
// maxUpdatedAt is nil.
func OpenRequestsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.WalkRequest{}).Where("status = ?", domain.RequestOpen)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// WalkerSummaryRow aggregates a walker's marketplace activity: how many
// requests they applied to, how many they were matched on, and the count and
// average of ratings they received.
type WalkerSummaryRow struct {
	WalkerID      string   `json:"walker_id"`
	Username      string   `json:"username"`
	Applications  int64    `json:"applications"`
	AcceptedWalks int64    `json:"accepted_walks"`
	Ratings       int64    `json:"ratings"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// WalkerSummary returns one row per walker-role user with application,
// match, and rating aggregates. Walkers with no activity appear with zero
// counts and a nil average.
func WalkerSummary(ctx context.Context, db *gorm.DB) ([]WalkerSummaryRow, error) {
	var out []WalkerSummaryRow
	err := db.WithContext(ctx).
		Table("users").
		Select(`users.id AS walker_id,
			users.username AS username,
			COUNT(DISTINCT wa.id) AS applications,
			COUNT(DISTINCT CASE WHEN wa.status = ? THEN wa.id END) AS accepted_walks,
			COUNT(DISTINCT wr.id) AS ratings,
			AVG(wr.rating) AS average_rating`,
			domain.ApplicationAccepted).
		Joins("LEFT JOIN walk_applications wa ON wa.walker_id = users.id").
		Joins("LEFT JOIN walk_ratings wr ON wr.walker_id = users.id").
		Where("users.role = ?", domain.RoleWalker).
		Group("users.id, users.username").
		Order("users.username ASC").
		Scan(&out).Error
	return out, err
}
