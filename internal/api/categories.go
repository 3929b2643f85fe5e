package api

import (
	"net/http"

	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// CategoriesHandler handles item category operations.
type CategoriesHandler struct {
	Sessions *session.Manager
}

var categoryAccessors = query.Accessors[model.Category]{
	SearchFields: func(c model.Category) []string {
		return []string{c.Name, c.Description}
	},
	Status: func(c model.Category) string { return c.Status },
}

// List returns categories, filtered and paginated.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	page := query.Apply(s.ListCategories(), parseQuery(r), categoryAccessors)
	jsonResponse(w, http.StatusOK, page)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// Create adds a new active category.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageCategories); err != nil {
		domainError(w, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := s.CreateCategory(model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, category)
}

// Update modifies a category's display fields.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageCategories); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := s.UpdateCategory(id, req.Name, req.Description, req.Color, req.Icon)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, category)
}

// Archive retires a category. Items already logged under it keep their
// label; new items can no longer use it.
func (h *CategoriesHandler) Archive(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageCategories); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := s.ArchiveCategory(id)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, category)
}
