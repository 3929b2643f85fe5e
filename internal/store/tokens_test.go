package store

import (
	"context"
	"testing"
	"time"

	"github.com/kwamena/ugrecover/internal/db"
	"github.com/kwamena/ugrecover/internal/model"
)

func TestRefreshTokenSingleUse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, model.User{
		Username: "ama", PasswordHash: "hash", Role: model.RoleStudent,
	})

	if err := SaveRefreshToken(ctx, database, "raw-token", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SaveRefreshToken: %v", err)
	}

	userID, err := ConsumeRefreshToken(ctx, database, "raw-token")
	if err != nil {
		t.Fatalf("ConsumeRefreshToken: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, userID)
	}

	// Second use fails: tokens are consumed on first use.
	userID, err = ConsumeRefreshToken(ctx, database, "raw-token")
	if err != nil {
		t.Fatalf("ConsumeRefreshToken: %v", err)
	}
	if userID != 0 {
		t.Errorf("expected 0 on reuse, got %d", userID)
	}
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, model.User{
		Username: "kofi", PasswordHash: "hash", Role: model.RoleStudent,
	})
	SaveRefreshToken(ctx, database, "stale", user.ID, time.Now().Add(-time.Minute))

	userID, err := ConsumeRefreshToken(ctx, database, "stale")
	if err != nil {
		t.Fatalf("ConsumeRefreshToken: %v", err)
	}
	if userID != 0 {
		t.Errorf("expected 0 for expired token, got %d", userID)
	}
}

func TestDeleteUserRefreshTokens(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, model.User{
		Username: "efua", PasswordHash: "hash", Role: model.RoleStudent,
	})
	SaveRefreshToken(ctx, database, "one", user.ID, time.Now().Add(time.Hour))
	SaveRefreshToken(ctx, database, "two", user.ID, time.Now().Add(time.Hour))

	if err := DeleteUserRefreshTokens(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUserRefreshTokens: %v", err)
	}

	if userID, _ := ConsumeRefreshToken(ctx, database, "one"); userID != 0 {
		t.Errorf("expected token 'one' to be gone, got user %d", userID)
	}
	if userID, _ := ConsumeRefreshToken(ctx, database, "two"); userID != 0 {
		t.Errorf("expected token 'two' to be gone, got user %d", userID)
	}
}

func TestTokenRevocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected unknown JTI not to be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, _ = IsTokenRevoked(ctx, database, "jti-1")
	if !revoked {
		t.Error("expected JTI to be revoked")
	}

	// Revoking twice is harmless.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken (again): %v", err)
	}
}
