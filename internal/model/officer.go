package model

import "time"

// Officer represents a lost-and-found officer who can be assigned to at
// most one collection point at a time.
//
// Invariant: Assigned is true exactly when AssignedPointID is non-nil.
type Officer struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Rank            string    `json:"rank,omitempty"`
	Status          string    `json:"status"`
	JoinDate        time.Time `json:"join_date"`
	Assigned        bool      `json:"assigned"`
	AssignedPointID *int64    `json:"assigned_point_id,omitempty"`

	// Joined field (not always populated): name of the assigned point.
	AssignedPoint string `json:"assigned_point,omitempty"`
}

// Officer statuses.
const (
	OfficerStatusActive   = "active"
	OfficerStatusInactive = "inactive"
)
