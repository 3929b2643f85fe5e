package model

import "time"

// User represents an authentication user (separate from the session-scoped
// officer records; officer accounts carry a link to their officer ID).
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	StudentID    string     `json:"student_id,omitempty"`
	OfficerID    *int64     `json:"officer_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleSudo    = "sudo"
	RoleOfficer = "officer"
	RoleStudent = "student"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleSudo:    3,
		RoleOfficer: 2,
		RoleStudent: 1,
	}
	return levels[role] >= levels[minimum]
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleSudo || role == RoleOfficer || role == RoleStudent
}
