package api

import (
	"net/http"
	"time"

	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// OfficersHandler handles officer operations, including assignment to
// collection points.
type OfficersHandler struct {
	Sessions *session.Manager
}

var officerAccessors = query.Accessors[model.Officer]{
	SearchFields: func(o model.Officer) []string {
		return []string{o.Name, o.Email, o.Rank, o.AssignedPoint}
	},
	Status: func(o model.Officer) string { return o.Status },
	Date:   func(o model.Officer) string { return o.JoinDate.Format(time.DateOnly) },
}

// List returns officers, filtered and paginated.
func (h *OfficersHandler) List(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	page := query.Apply(s.ListOfficers(), parseQuery(r), officerAccessors)
	jsonResponse(w, http.StatusOK, page)
}

// Get returns one officer.
func (h *OfficersHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}
	officer, err := s.GetOfficer(id)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, officer)
}

type officerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Rank  string `json:"rank"`
}

// Create adds a new officer, initially unassigned.
func (h *OfficersHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageOfficers); err != nil {
		domainError(w, err)
		return
	}

	var req officerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	officer, err := s.CreateOfficer(model.Officer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Rank:  req.Rank,
	})
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, officer)
}

type assignRequest struct {
	PointID int64 `json:"point_id"`
}

// Assign attaches an officer to an active collection point.
func (h *OfficersHandler) Assign(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageOfficers); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	officer, err := s.AssignOfficer(id, req.PointID)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, officer)
}

// Unassign detaches an officer from their collection point.
func (h *OfficersHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageOfficers); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}

	officer, err := s.UnassignOfficer(id)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, officer)
}

// Delete removes an officer, unassigning them first if needed.
func (h *OfficersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ManageOfficers); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid officer ID")
		return
	}
	if err := s.DeleteOfficer(id); err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "officer deleted"})
}
