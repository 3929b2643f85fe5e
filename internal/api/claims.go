package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kwamena/ugrecover/internal/authz"
	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
	"github.com/kwamena/ugrecover/internal/session"
)

// ClaimsHandler handles claim request operations.
type ClaimsHandler struct {
	Sessions *session.Manager
}

var claimAccessors = query.Accessors[model.ClaimRequest]{
	SearchFields: func(c model.ClaimRequest) []string {
		return []string{c.Ref, c.ItemName, c.ClaimantName, c.ClaimantEmail}
	},
	Status: func(c model.ClaimRequest) string { return c.Status },
	Date:   func(c model.ClaimRequest) string { return c.SubmittedAt.Format(time.DateOnly) },
}

// List returns claim requests, filtered and paginated. Students see only
// their own claims.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}

	all := s.ListClaims()
	if claims.Role == model.RoleStudent {
		own := all[:0]
		for _, c := range all {
			if strings.EqualFold(c.ClaimantEmail, claims.Email) {
				own = append(own, c)
			}
		}
		all = own
	}

	page := query.Apply(all, parseQuery(r), claimAccessors)
	jsonResponse(w, http.StatusOK, page)
}

// Get returns one claim request. Students may only read their own.
func (h *ClaimsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	claim, err := s.GetClaim(id)
	if err != nil {
		domainError(w, err)
		return
	}
	if claims.Role == model.RoleStudent && !strings.EqualFold(claim.ClaimantEmail, claims.Email) {
		domainError(w, fmt.Errorf("%w: claim belongs to another student", model.ErrForbidden))
		return
	}
	jsonResponse(w, http.StatusOK, claim)
}

type submitClaimRequest struct {
	ItemID                int64    `json:"item_id"`
	ClaimantName          string   `json:"claimant_name"`
	ClaimantEmail         string   `json:"claimant_email"`
	ClaimantPhone         string   `json:"claimant_phone"`
	ClaimantStudentID     string   `json:"claimant_student_id"`
	Description           string   `json:"description"`
	IdentificationDetails string   `json:"identification_details"`
	Documents             []string `json:"verification_documents"`
}

// Submit files a claim on a lost item. Students may only claim for
// themselves; the item moves to pending verification.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.SubmitClaims); err != nil {
		domainError(w, err)
		return
	}

	var req submitClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := authz.SelfScope(claims.Role, req.ClaimantEmail, claims.Email); err != nil {
		domainError(w, err)
		return
	}

	claim, err := s.SubmitClaim(model.ClaimRequest{
		ItemID:                req.ItemID,
		ClaimantName:          req.ClaimantName,
		ClaimantEmail:         req.ClaimantEmail,
		ClaimantPhone:         req.ClaimantPhone,
		ClaimantStudentID:     req.ClaimantStudentID,
		Description:           req.Description,
		IdentificationDetails: req.IdentificationDetails,
		Documents:             req.Documents,
	})
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, claim)
}

type reviewClaimRequest struct {
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	AppointmentDate *time.Time `json:"appointment_date"`
}

// Review moves a claim through its review cycle. Officers may only review
// claims on items held at their assigned collection point.
func (h *ClaimsHandler) Review(w http.ResponseWriter, r *http.Request) {
	s, claims, ok := sessionOf(w, r, h.Sessions)
	if !ok {
		return
	}
	if err := authz.Can(claims.Role, authz.ReviewClaims); err != nil {
		domainError(w, err)
		return
	}

	id, err := parseID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim ID")
		return
	}

	claim, err := s.GetClaim(id)
	if err != nil {
		domainError(w, err)
		return
	}
	item, err := s.GetItem(claim.ItemID, time.Now())
	if err != nil {
		domainError(w, err)
		return
	}
	if err := pointScope(s, claims, item.PointID); err != nil {
		domainError(w, err)
		return
	}

	var req reviewClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.ReviewClaim(id, req.Status, founderName(s, claims), req.Notes, req.AppointmentDate)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}
