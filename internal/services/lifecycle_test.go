package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pawmatch/go-walk-backend/internal/domain"
	"github.com/pawmatch/go-walk-backend/internal/repo"
)

// TestWalkLifecycle_EndToEnd drives one request through the whole happy
// path across all services: post → two applications → accept one →
// complete → rate, checking the cross-service side effects at each step.
func TestWalkLifecycle_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleOwner)
	bob := seedUser(t, db, "bob", domain.RoleWalker)
	steve := seedUser(t, db, "steve", domain.RoleWalker)
	rex := seedDog(t, db, alice.ID, "Rex")

	requests := newRequestService(db)
	applications := &ApplicationService{DB: db}
	matching := &MatchingService{DB: db}
	ratings := &RatingService{DB: db}

	// Alice posts a walk for Rex.
	req, err := requests.Create(ctx, alice.ID, rex.ID, time.Now().Add(48*time.Hour), 45, "Parklands & Beachside Ave")
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	// The request is publicly listed while open.
	open, err := requests.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 || open[0].ID != req.ID {
		t.Fatalf("open listing = %d rows; want Alice's request", len(open))
	}

	// Bob and Steve both bid.
	appBob, err := applications.Apply(ctx, req.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob apply: %v", err)
	}
	if _, err := applications.Apply(ctx, req.ID, steve.ID); err != nil {
		t.Fatalf("steve apply: %v", err)
	}

	// Alice picks Bob; Steve is rejected and the request leaves the
	// public listing.
	if _, err := matching.Accept(ctx, alice.ID, req.ID, appBob.ID); err != nil {
		t.Fatalf("accept bob: %v", err)
	}
	open, err = requests.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open after accept: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("open listing after accept = %d rows; want 0", len(open))
	}

	// Steve can no longer apply, and nobody can rate yet.
	if _, err := applications.Apply(ctx, req.ID, steve.ID); !errors.Is(err, ErrRequestNotOpen) {
		t.Fatalf("late apply: got %v, want ErrRequestNotOpen", err)
	}
	if _, err := ratings.Rate(ctx, alice.ID, req.ID, 5, nil); !errors.Is(err, ErrRequestNotCompleted) {
		t.Fatalf("early rate: got %v, want ErrRequestNotCompleted", err)
	}

	// The walk happens; Alice marks it complete and rates Bob.
	if err := requests.Complete(ctx, req.ID, alice.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	comment := "Great job bob!"
	rating, err := ratings.Rate(ctx, alice.ID, req.ID, 5, &comment)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rating.WalkerID != bob.ID {
		t.Fatalf("rated walker = %s; want bob (%s)", rating.WalkerID, bob.ID)
	}

	// A completed, rated request admits no further transitions.
	if err := requests.Cancel(ctx, req.ID, alice.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel completed: got %v, want ErrInvalidTransition", err)
	}

	// The summary reflects everything that happened.
	rows, err := repo.WalkerSummary(ctx, db)
	if err != nil {
		t.Fatalf("walker summary: %v", err)
	}
	for _, row := range rows {
		switch row.Username {
		case "bob":
			if row.Applications != 1 || row.AcceptedWalks != 1 || row.Ratings != 1 {
				t.Fatalf("bob summary = %+v", row)
			}
		case "steve":
			if row.Applications != 1 || row.AcceptedWalks != 0 || row.Ratings != 0 {
				t.Fatalf("steve summary = %+v", row)
			}
		}
	}
}
