// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-side repository functions for the
// User and Dog models. Accounts and dogs are created and maintained by the
// external management collaborator; this core only looks them up to check
// roles and ownership.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawmatch/go-walk-backend/internal/domain"
)

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetDog fetches a dog by ID, or ErrNotFound if missing.
func GetDog(ctx context.Context, db *gorm.DB, id string) (*domain.Dog, error) {
	var d domain.Dog
	if err := db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DogWithOwner is a read model row joining a dog with its owner's username.
type DogWithOwner struct {
	DogID         string         `json:"dog_id"`
	Name          string         `json:"dog_name"`
	Size          domain.DogSize `json:"size"`
	OwnerUsername string         `json:"owner_username"`
}

// ListDogsWithOwners returns every dog joined with its owner's username,
// ordered by dog name for stable output.
func ListDogsWithOwners(ctx context.Context, db *gorm.DB) ([]DogWithOwner, error) {
	var out []DogWithOwner
	err := db.WithContext(ctx).
		Table("dogs").
		Select("dogs.id AS dog_id, dogs.name AS name, dogs.size AS size, users.username AS owner_username").
		Joins("JOIN users ON users.id = dogs.owner_id").
		Order("dogs.name ASC, dogs.id ASC").
		Scan(&out).Error
	return out, err
}
