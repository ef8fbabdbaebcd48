package repo

import (
	"context"
	"testing"
	"time"
)

func TestCreateWalkRating_SuccessAndDuplicate(t *testing.T) {
	db := newWalkDB(t)
	ownerID, dogID := seedOwnerAndDog(t, db)
	walkerID := seedWalker(t, db, "bobwalker")

	r, err := CreateWalkRequest(context.Background(), db, dogID, time.Now().UTC(), 30, "Parklands")
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}

	comment := "Great walk"
	start := time.Now().UTC()
	rating, err := CreateWalkRating(context.Background(), db, r.ID, walkerID, ownerID, 5, &comment)
	if err != nil {
		t.Fatalf("CreateWalkRating: %v", err)
	}
	if rating.ID == "" || rating.Rating != 5 || rating.WalkerID != walkerID || rating.OwnerID != ownerID {
		t.Fatalf("unexpected rating: %+v", rating)
	}
	if rating.Comments == nil || *rating.Comments != "Great walk" {
		t.Fatalf("comments not persisted: %+v", rating.Comments)
	}
	if rating.RatedAt.IsZero() || rating.RatedAt.Before(start.Add(-time.Minute)) {
		t.Fatalf("RatedAt not set reasonably: %v", rating.RatedAt)
	}

	got, err := GetWalkRating(context.Background(), db, r.ID)
	if err != nil || got.ID != rating.ID {
		t.Fatalf("GetWalkRating: (%+v, %v)", got, err)
	}

	// UNIQUE(request_id): the second rating must fail with a raw DB error.
	if _, err := CreateWalkRating(context.Background(), db, r.ID, walkerID, ownerID, 4, nil); err == nil {
		t.Fatalf("expected duplicate error on second rating")
	}
}

func TestCreateWalkRating_NilComments(t *testing.T) {
	db := newWalkDB(t)
	ownerID, dogID := seedOwnerAndDog(t, db)
	walkerID := seedWalker(t, db, "bobwalker")

	r, err := CreateWalkRequest(context.Background(), db, dogID, time.Now().UTC(), 30, "Parklands")
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}

	rating, err := CreateWalkRating(context.Background(), db, r.ID, walkerID, ownerID, 1, nil)
	if err != nil {
		t.Fatalf("CreateWalkRating: %v", err)
	}
	if rating.Comments != nil {
		t.Fatalf("expected nil comments, got %v", *rating.Comments)
	}
}

func TestGetWalkRating_NotFound(t *testing.T) {
	db := newWalkDB(t)
	if _, err := GetWalkRating(context.Background(), db, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
