// Package domain defines the persistence models for the dog-walking
// marketplace: users, dogs, walk requests, walk applications, and walk
// ratings. These types are mapped with GORM and form the core data layer
// of the application.
//
// Status and role fields use closed, named string types so that invalid
// values are caught at the boundary instead of leaking into business logic.
// The matching database CHECK constraints remain in place as defense in
// depth against writes that bypass this package.
package domain

import (
	"time"
)

// Role classifies a user as either a dog owner or a walker. Roles are
// immutable after creation.
type Role string

// Valid user roles.
const (
	RoleOwner  Role = "owner"
	RoleWalker Role = "walker"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleOwner || r == RoleWalker }

// DogSize is the coarse size class of a dog.
type DogSize string

// Valid dog sizes.
const (
	SizeSmall  DogSize = "small"
	SizeMedium DogSize = "medium"
	SizeLarge  DogSize = "large"
)

// Valid reports whether s is one of the known sizes.
func (s DogSize) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// RequestStatus is the lifecycle state of a walk request.
//
// State machine: open is the initial state; completed and cancelled are
// terminal. open→accepted is reserved for the matching service; owners
// drive open→cancelled, accepted→completed, and accepted→cancelled.
type RequestStatus string

// Walk request lifecycle states.
const (
	RequestOpen      RequestStatus = "open"
	RequestAccepted  RequestStatus = "accepted"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// Valid reports whether s is one of the known request states.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestOpen, RequestAccepted, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// ownerEdges enumerates the owner-initiated request transitions.
// open→accepted is deliberately absent: only matching performs it.
var ownerEdges = map[RequestStatus][]RequestStatus{
	RequestOpen:     {RequestCancelled},
	RequestAccepted: {RequestCompleted, RequestCancelled},
}

// CanTransition reports whether an owner may move a request from s to target.
func (s RequestStatus) CanTransition(target RequestStatus) bool {
	for _, t := range ownerEdges[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ApplicationStatus is the lifecycle state of a walk application.
// pending is initial; accepted and rejected are terminal and are only
// ever set by the matching service when it resolves a request.
type ApplicationStatus string

// Walk application lifecycle states.
const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known application states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Rating bounds for a walk rating.
const (
	RatingMin = 1
	RatingMax = 5
)

// User represents an account in the marketplace. Users are created and
// maintained by the external account-management collaborator; this core
// only reads them.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username / Email: unique natural identifiers.
//   - Role: "owner" or "walker"; fixed for the lifetime of the account.
type User struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(64);not null;uniqueIndex"`
	Email     string    `json:"email"    gorm:"type:varchar(255);not null;uniqueIndex"`
	Role      Role      `json:"role"     gorm:"type:varchar(16);not null;check:role IN ('owner','walker')"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Dog represents a dog registered by an owner. Dogs belong to exactly one
// user, who must hold the owner role.
type Dog struct {
	ID      string  `json:"id"       gorm:"type:char(36);primaryKey"`
	OwnerID string  `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name    string  `json:"name"     gorm:"type:varchar(64);not null"`
	Size    DogSize `json:"size"     gorm:"type:varchar(16);not null;check:size IN ('small','medium','large')"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Dog.
func (Dog) TableName() string { return "dogs" }

// WalkRequest is an owner's posted request for a dog walk. Requests are
// created in the open state and move through the lifecycle described on
// RequestStatus. Ownership is transitive through the dog.
//
// The (status, requested_time) index backs the open-request listing, which
// orders by requested time ascending so the earliest walks surface first.
type WalkRequest struct {
	ID              string        `json:"id"               gorm:"type:char(36);primaryKey"`
	DogID           string        `json:"dog_id"           gorm:"type:char(36);not null;index"`
	RequestedTime   time.Time     `json:"requested_time"   gorm:"not null;index:idx_request_status_time,priority:2"`
	DurationMinutes int           `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Location        string        `json:"location"         gorm:"type:varchar(255);not null"`
	Status          RequestStatus `json:"status"           gorm:"type:varchar(16);not null;default:'open';check:status IN ('open','accepted','completed','cancelled');index:idx_request_status_time,priority:1"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Dog Dog `json:"-" gorm:"foreignKey:DogID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WalkRequest.
func (WalkRequest) TableName() string { return "walk_requests" }

// WalkApplication is a walker's bid to fulfil a specific walk request.
// A walker may apply to a given request at most once, enforced both in the
// application service and by the (request_id, walker_id) unique index.
// At most one application per request ever reaches the accepted state.
type WalkApplication struct {
	ID        string            `json:"id"         gorm:"type:char(36);primaryKey"`
	RequestID string            `json:"request_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_application_request_walker,priority:1"`
	WalkerID  string            `json:"walker_id"  gorm:"type:char(36);not null;index;uniqueIndex:ux_application_request_walker,priority:2"`
	Status    ApplicationStatus `json:"status"     gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','accepted','rejected')"`
	AppliedAt time.Time         `json:"applied_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Request WalkRequest `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Walker  User        `json:"-" gorm:"foreignKey:WalkerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WalkApplication.
func (WalkApplication) TableName() string { return "walk_applications" }

// WalkRating is the owner's single post-completion evaluation of the
// matched walker. At most one rating exists per request (unique index on
// request_id). The walker id is always derived from the accepted
// application of the request, never taken from caller input.
type WalkRating struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	RequestID string    `json:"request_id" gorm:"type:char(36);not null;uniqueIndex:ux_rating_request"`
	WalkerID  string    `json:"walker_id"  gorm:"type:char(36);not null;index"`
	OwnerID   string    `json:"owner_id"   gorm:"type:char(36);not null;index"`
	Rating    int       `json:"rating"     gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comments  *string   `json:"comments,omitempty" gorm:"type:text"`
	RatedAt   time.Time `json:"rated_at"`

	Request WalkRequest `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WalkRating.
func (WalkRating) TableName() string { return "walk_ratings" }
