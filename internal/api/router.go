package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/kwamena/ugrecover/internal/auth"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// NewRouter builds the API router with all routes and middleware.
func NewRouter(db *sql.DB, jwtSecret string, sessions *session.Manager) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Sessions: sessions}
	usersHandler := &UsersHandler{DB: db}
	pointsHandler := &PointsHandler{Sessions: sessions}
	officersHandler := &OfficersHandler{Sessions: sessions}
	categoriesHandler := &CategoriesHandler{Sessions: sessions}
	itemsHandler := &ItemsHandler{Sessions: sessions}
	claimsHandler := &ClaimsHandler{Sessions: sessions}
	reportsHandler := &ReportsHandler{Sessions: sessions}

	authn := AuthMiddleware(jwtSecret, db)
	sudo := RequireRole(model.RoleSudo)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authn(h))
	}
	handleSudo := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authn(sudo(h)))
	}

	// Auth.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	handle("POST /api/auth/logout", authHandler.Logout)
	handle("PUT /api/auth/password", authHandler.ChangePassword)

	// Users.
	handleSudo("GET /api/users", usersHandler.List)
	handleSudo("POST /api/users", usersHandler.Create)
	handleSudo("PUT /api/users/{id}/role", usersHandler.UpdateRole)
	handleSudo("DELETE /api/users/{id}", usersHandler.Delete)

	// Collection points.
	handle("GET /api/points", pointsHandler.List)
	handle("GET /api/points/{id}", pointsHandler.Get)
	handle("POST /api/points", pointsHandler.Create)
	handle("PUT /api/points/{id}", pointsHandler.Update)
	handle("DELETE /api/points/{id}", pointsHandler.Delete)

	// Officers.
	handle("GET /api/officers", officersHandler.List)
	handle("GET /api/officers/{id}", officersHandler.Get)
	handle("POST /api/officers", officersHandler.Create)
	handle("DELETE /api/officers/{id}", officersHandler.Delete)
	handle("POST /api/officers/{id}/assign", officersHandler.Assign)
	handle("POST /api/officers/{id}/unassign", officersHandler.Unassign)

	// Categories.
	handle("GET /api/categories", categoriesHandler.List)
	handle("POST /api/categories", categoriesHandler.Create)
	handle("PUT /api/categories/{id}", categoriesHandler.Update)
	handle("POST /api/categories/{id}/archive", categoriesHandler.Archive)

	// Lost items.
	handle("GET /api/items", itemsHandler.List)
	handle("GET /api/items/{id}", itemsHandler.Get)
	handle("POST /api/items", itemsHandler.Log)
	handle("PUT /api/items/{id}/status", itemsHandler.SetStatus)
	handle("PUT /api/items/{id}/image", itemsHandler.UploadImage)
	handle("GET /api/items/{id}/image", itemsHandler.GetImage)

	// Claim requests.
	handle("GET /api/claims", claimsHandler.List)
	handle("GET /api/claims/{id}", claimsHandler.Get)
	handle("POST /api/claims", claimsHandler.Submit)
	handle("POST /api/claims/{id}/review", claimsHandler.Review)

	// Reports.
	handleSudo("GET /api/reports/items.xlsx", reportsHandler.ItemsXLSX)

	return RequestIDMiddleware(LoggingMiddleware(mux))
}

// sessionOf resolves the caller's session from the request claims, writing
// a 401 if the caller is unauthenticated or has no active session.
func sessionOf(w http.ResponseWriter, r *http.Request, m *session.Manager) (*session.Session, *auth.Claims, bool) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return nil, nil, false
	}
	s := m.Get(claims.UserID)
	if s == nil {
		jsonError(w, http.StatusUnauthorized, "no active session, please log in again")
		return nil, nil, false
	}
	return s, claims, true
}

// parseID extracts the {id} path value as an int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseQuery reads the shared listing parameters from the URL.
func parseQuery(r *http.Request) query.Params {
	q := r.URL.Query()
	p := query.Params{
		Search: q.Get("q"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if v := q.Get("status"); v != "" {
		p.Status = &v
	}
	if v := q.Get("category"); v != "" {
		p.Category = &v
	}
	p.Page, _ = strconv.Atoi(q.Get("page"))
	p.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	return p
}
