package api

import (
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kwamena/ugrecover/internal/auth"
	"github.com/kwamena/ugrecover/internal/session"
	"github.com/kwamena/ugrecover/internal/store"
)

// AuthHandler handles login, token refresh, logout, and password changes.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	Sessions  *session.Manager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         any    `json:"user,omitempty"`
}

// Login verifies credentials, issues a token pair, and starts the user's
// working session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := store.GetUserByUsername(r.Context(), h.DB, req.Username)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		jsonError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	access, refresh, err := h.issueTokens(r, user.ID)
	if err != nil {
		zap.L().Error("issuing tokens", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Sessions.Start(user.ID, user.Role)
	zap.L().Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)

	jsonResponse(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a single-use refresh token for a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		jsonError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	userID, err := store.ConsumeRefreshToken(r.Context(), h.DB, req.RefreshToken)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if userID == 0 {
		jsonError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, userID)
	if err != nil || user == nil {
		jsonError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	access, refresh, err := h.issueTokens(r, user.ID)
	if err != nil {
		zap.L().Error("issuing tokens", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Sessions live in memory; after a server restart a valid refresh
	// token can outlive the session it belonged to.
	if h.Sessions.Get(user.ID) == nil {
		h.Sessions.Start(user.ID, user.Role)
	}

	jsonResponse(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Logout revokes the current access token, deletes the user's refresh
// tokens, and discards the working session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := store.DeleteUserRefreshTokens(r.Context(), h.DB, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Sessions.End(claims.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the caller's password after verifying the current
// one, and invalidates their refresh tokens.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 8 {
		jsonError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil || user == nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		jsonError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := store.UpdateUserPassword(r.Context(), h.DB, user.ID, string(hash)); err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := store.DeleteUserRefreshTokens(r.Context(), h.DB, user.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// issueTokens generates an access/refresh pair for the user and persists
// the refresh token's hash.
func (h *AuthHandler) issueTokens(r *http.Request, userID int64) (string, string, error) {
	user, err := store.GetUser(r.Context(), h.DB, userID)
	if err != nil {
		return "", "", err
	}

	access, err := auth.GenerateToken(h.JWTSecret, auth.TokenUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		OfficerID: user.OfficerID,
	})
	if err != nil {
		return "", "", err
	}

	refresh, err := auth.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	expiresAt := time.Now().Add(auth.RefreshTokenExpiry)
	if err := store.SaveRefreshToken(r.Context(), h.DB, refresh, user.ID, expiresAt); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}
