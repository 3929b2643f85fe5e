package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// hashToken returns the stored form of a refresh token. Raw tokens never
// touch the database.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// SaveRefreshToken stores a refresh token for a user.
func SaveRefreshToken(ctx context.Context, db *sql.DB, raw string, userID int64, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES (?, ?, ?)`,
		hashToken(raw), userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}

	// Opportunistically clean up expired tokens.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, time.Now(),
	)

	return nil
}

// ConsumeRefreshToken deletes a refresh token and returns the owning user
// ID. Returns (0, nil) if the token is unknown or expired; each token can
// be used once.
func ConsumeRefreshToken(ctx context.Context, db *sql.DB, raw string) (int64, error) {
	hash := hashToken(raw)

	var userID int64
	var expiresAt time.Time
	err := db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = ?`, hash,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("looking up refresh token: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`, hash,
	); err != nil {
		return 0, fmt.Errorf("consuming refresh token: %w", err)
	}

	if time.Now().After(expiresAt) {
		return 0, nil
	}
	return userID, nil
}

// DeleteUserRefreshTokens removes all refresh tokens for a user (logout).
func DeleteUserRefreshTokens(ctx context.Context, db *sql.DB, userID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting refresh tokens: %w", err)
	}
	return nil
}

// RevokeToken adds an access token's JTI to the revocation list.
func RevokeToken(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now(),
	)

	return nil
}

// IsTokenRevoked checks if an access token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`, jti,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return count > 0, nil
}
