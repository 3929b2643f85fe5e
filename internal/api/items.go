package api

import (
	"net/http"
	"time"

	"github.com/kwamena/ugrecover/internal/auth"
	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/imaging"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// maxUploadBytes caps item photo uploads.
const maxUploadBytes = 10 << 20

// ItemsHandler handles lost item operations.
type ItemsHandler struct {
	Sessions *session.Manager
}

var itemAccessors = query.Accessors[model.LostItem]{
	SearchFields: func(it model.LostItem) []string {
		return []string{it.Name, it.Description, it.FoundAt, it.CheckpointOffice}
	},
	Status:   func(it model.LostItem) string { return it.Status },
	Category: func(it model.LostItem) string { return it.Category },
	Date:     func(it model.LostItem) string { return it.KeyedInDate.Format(time.DateOnly) },
}

// List returns lost items annotated with their expiry countdown, filtered
// and paginated. Items whose retention window has lapsed are flipped to
// expired before listing.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	now := time.Now()
	s.SweepExpired(now)
	page := query.Apply(s.ListItems(now), parseQuery(r), itemAccessors)
	jsonResponse(w, http.StatusOK, page)
}

// Get returns one lost item, annotated.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item ID")
		return
	}
	item, err := s.GetItem(id, time.Now())
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

type logItemRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	FoundAt       string     `json:"found_at"`
	PointID       int64      `json:"point_id"`
	FoundDate     *time.Time `json:"found_date"`
	RetentionDays int        `json:"retention_days"`
	Features      []string   `json:"features"`
	Images        []string   `json:"images"`
}

// Log records a found item at the caller's collection point.
func (h *ItemsHandler) Log(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.LogItems); err != nil {
		domainError(w, err)
		return
	}

	var req logItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := pointScope(s, claims, req.PointID); err != nil {
		domainError(w, err)
		return
	}

	item := model.LostItem{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		FoundAt:       req.FoundAt,
		PointID:       req.PointID,
		RetentionDays: req.RetentionDays,
		Features:      req.Features,
		Images:        req.Images,
		Founder:       founderName(s, claims),
	}
	if req.FoundDate != nil {
		item.FoundDate = *req.FoundDate
	}

	created, err := s.LogItem(item)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

type itemStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus transitions a lost item between statuses.
func (h *ItemsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.LogItems); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	item, err := s.GetItem(id, time.Now())
	if err != nil {
		domainError(w, err)
		return
	}
	if err := pointScope(s, claims, item.PointID); err != nil {
		domainError(w, err)
		return
	}

	var req itemStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.SetItemStatus(id, req.Status)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// UploadImage processes and stores an item photo. The request body is the
// raw image; a downscaled copy and a square thumbnail are kept.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.LogItems); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	item, err := s.GetItem(id, time.Now())
	if err != nil {
		domainError(w, err)
		return
	}
	if err := pointScope(s, claims, item.PointID); err != nil {
		domainError(w, err)
		return
	}

	result, err := imaging.Process(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "unsupported or corrupt image")
		return
	}

	updated, err := s.SetItemPhoto(id, result.Data, result.Thumb, result.MIME)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// GetImage serves an item's stored photo. Pass ?thumb=1 for the thumbnail.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	data, mime, err := s.GetItemPhoto(id, r.URL.Query().Get("thumb") == "1")
	if err != nil {
		domainError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo uploaded for this item")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// pointScope checks an officer-scoped mutation against the collection
// point the caller's officer record is assigned to.
func pointScope(s *session.Session, claims *auth.Claims, pointID int64) error {
	var assigned *int64
	if claims.OfficerID != nil {
		if o, err := s.GetOfficer(*claims.OfficerID); err == nil {
			assigned = o.AssignedPointID
		}
	}
	return authz.PointScope(claims.Role, assigned, pointID)
}

// founderName is the display name recorded for who logged an item: the
// linked officer's name where one exists, the username otherwise.
func founderName(s *session.Session, claims *auth.Claims) string {
	if claims.OfficerID != nil {
		if o, err := s.GetOfficer(*claims.OfficerID); err == nil {
			return o.Name
		}
	}
	return claims.Username
}
