package api

import (
	"net/http"
	"time"

	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// PointsHandler handles collection point operations.
type PointsHandler struct {
	Sessions *session.Manager
}

var pointAccessors = query.Accessors[model.CollectionPoint]{
	SearchFields: func(p model.CollectionPoint) []string {
		return []string{p.Name, p.Location, p.Address}
	},
	Status: func(p model.CollectionPoint) string { return p.Status },
	Date:   func(p model.CollectionPoint) string { return p.CreatedAt.Format(time.DateOnly) },
}

// List returns collection points, filtered and paginated.
func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	page := query.Apply(s.ListPoints(), parseQuery(r), pointAccessors)
	jsonResponse(w, http.StatusOK, page)
}

// Get returns one collection point with its assigned officers.
func (h *PointsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid point ID")
		return
	}
	point, err := s.GetPoint(id)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, point)
}

type pointRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Capacity    int    `json:"capacity"`
}

// Create adds a new collection point.
func (h *PointsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManagePoints); err != nil {
		domainError(w, err)
		return
	}

	var req pointRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = model.PointStatusActive
	}

	point, err := s.CreatePoint(model.CollectionPoint{
		Name:        req.Name,
		Location:    req.Location,
		Address:     req.Address,
		Description: req.Description,
		Status:      req.Status,
		Capacity:    req.Capacity,
	})
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, point)
}

// Update modifies a collection point.
func (h *PointsHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManagePoints); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid point ID")
		return
	}

	var req pointRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	point, err := s.UpdatePoint(id, req.Name, req.Location, req.Address, req.Description, req.Status, req.Capacity)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, point)
}

// Delete removes an empty collection point, detaching its officers.
func (h *PointsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManagePoints); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid point ID")
		return
	}
	if err := s.DeletePoint(id); err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "collection point deleted"})
}
