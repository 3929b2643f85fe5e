package store

import (
	"context"
	"testing"

	"github.com/kwamena/ugrecover/internal/db"
	"github.com/kwamena/ugrecover/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	officerID := int64(3)
	user, err := CreateUser(ctx, database, model.User{
		Username:     "kwame",
		Email:        "kwame@ug.edu.gh",
		PasswordHash: "hash",
		Role:         model.RoleOfficer,
		OfficerID:    &officerID,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "kwame" {
		t.Errorf("expected username 'kwame', got %q", user.Username)
	}
	if user.Role != model.RoleOfficer {
		t.Errorf("expected role 'officer', got %q", user.Role)
	}
	if user.OfficerID == nil || *user.OfficerID != 3 {
		t.Errorf("expected officer ID 3, got %v", user.OfficerID)
	}

	got, err := GetUserByUsername(ctx, database, "kwame")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("expected user %d, got %v", user.ID, got)
	}
}

func TestGetUserUnknownReturnsNil(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetUser(ctx, database, 99)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown user, got %+v", got)
	}
}

func TestUpdateUserRole(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, model.User{
		Username: "ama", PasswordHash: "hash", Role: model.RoleStudent,
	})
	if err := UpdateUserRole(ctx, database, user.ID, model.RoleOfficer); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.Role != model.RoleOfficer {
		t.Errorf("expected role 'officer', got %q", got.Role)
	}
}

func TestSoftDeleteUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, model.User{
		Username: "kofi", PasswordHash: "hash", Role: model.RoleStudent,
	})
	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	users, _ := ListUsers(ctx, database)
	if len(users) != 0 {
		t.Errorf("expected 0 users after soft delete, got %d", len(users))
	}

	// Still fetchable by ID, with the deletion recorded.
	got, _ := GetUser(ctx, database, user.ID)
	if got == nil {
		t.Fatal("expected soft-deleted user to still be fetchable by ID")
	}
	if got.DeletedAt == nil {
		t.Error("expected deleted_at to be set")
	}
}
