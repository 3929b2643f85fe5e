// Package authz is the single place role permissions are decided. Handlers
// ask it before every mutation instead of re-checking roles ad hoc.
package authz

import (
	"fmt"
	"strings"

	"github.com/kwamena/ugrecover/internal/model"
)

// Action names a mutation class a role may or may not perform.
type Action string

const (
	ManagePoints     Action = "points:manage"
	ManageOfficers   Action = "officers:manage"
	ManageCategories Action = "categories:manage"
	ManageUsers      Action = "users:manage"
	LogItems         Action = "items:log"
	ReviewClaims     Action = "claims:review"
	SubmitClaims     Action = "claims:submit"
	ExportReports    Action = "reports:export"
)

// permissions is the full role capability table. Reads are open to every
// authenticated role and are not listed here.
var permissions = map[Action]map[string]bool{
	ManagePoints:     {model.RoleSudo: true},
	ManageOfficers:   {model.RoleSudo: true},
	ManageCategories: {model.RoleSudo: true},
	ManageUsers:      {model.RoleSudo: true},
	LogItems:         {model.RoleSudo: true, model.RoleOfficer: true},
	ReviewClaims:     {model.RoleSudo: true, model.RoleOfficer: true},
	SubmitClaims:     {model.RoleSudo: true, model.RoleStudent: true},
	ExportReports:    {model.RoleSudo: true},
}

// Can returns nil if role may perform action, and a forbidden error
// otherwise.
func Can(role string, action Action) error {
	if permissions[action][role] {
		return nil
	}
	return fmt.Errorf("%w: role %q may not %s", model.ErrForbidden, role, action)
}

// PointScope checks that an officer-scoped mutation targets the collection
// point the officer is assigned to. Sudo is unrestricted. An unassigned
// officer has no point scope at all.
func PointScope(role string, assignedPointID *int64, pointID int64) error {
	if role == model.RoleSudo {
		return nil
	}
	if assignedPointID == nil {
		return fmt.Errorf("%w: officer is not assigned to a collection point", model.ErrForbidden)
	}
	if *assignedPointID != pointID {
		return fmt.Errorf("%w: officer is not assigned to point %d", model.ErrForbidden, pointID)
	}
	return nil
}

// SelfScope checks that a student submits claims only for themselves.
// Sudo may file on anyone's behalf.
func SelfScope(role, claimantEmail, userEmail string) error {
	if role == model.RoleSudo {
		return nil
	}
	if !strings.EqualFold(claimantEmail, userEmail) {
		return fmt.Errorf("%w: claims can only be submitted for yourself", model.ErrForbidden)
	}
	return nil
}
