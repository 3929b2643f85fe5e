package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kwamena/ugrecover/internal/model"
)

// ListClaims returns all claim requests ordered by ID.
func (s *Session) ListClaims() []model.ClaimRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ClaimRequest, 0, len(s.claims))
	for _, c := range s.claims {
		out = append(out, copyClaim(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetClaim returns a claim request by ID.
func (s *Session) GetClaim(id int64) (model.ClaimRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.claims[id]
	if !ok {
		return model.ClaimRequest{}, fmt.Errorf("claim %d: %w", id, ErrClaimNotFound)
	}
	return copyClaim(c), nil
}

// SubmitClaim files a new claim on an item and moves the item to pending
// verification. A claimant may not hold two open claims on the same item,
// but may file again after an earlier claim was rejected.
func (s *Session) SubmitClaim(c model.ClaimRequest) (model.ClaimRequest, error) {
	if c.ClaimantName == "" || c.ClaimantEmail == "" {
		return model.ClaimRequest{}, fmt.Errorf("%w: claimant name and email required", model.ErrValidation)
	}
	if c.Description == "" || c.IdentificationDetails == "" {
		return model.ClaimRequest{}, fmt.Errorf("%w: description and identification details required", model.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[c.ItemID]
	if !ok {
		return model.ClaimRequest{}, fmt.Errorf("item %d: %w", c.ItemID, ErrItemNotFound)
	}
	if it.Status != model.ItemStatusAvailable && it.Status != model.ItemStatusPending {
		return model.ClaimRequest{}, fmt.Errorf("item %d is %s: %w", it.ID, it.Status, ErrItemNotClaimable)
	}
	for _, existing := range s.claims {
		if existing.ItemID == c.ItemID &&
			strings.EqualFold(existing.ClaimantEmail, c.ClaimantEmail) &&
			!model.ClaimFinal(existing.Status) {
			return model.ClaimRequest{}, fmt.Errorf("item %d: %w", c.ItemID, ErrDuplicateClaim)
		}
	}

	c.ID = s.nextClaimID
	s.nextClaimID++
	c.Ref = uuid.NewString()
	c.Status = model.ClaimStatusPending
	c.SubmittedAt = time.Now()
	c.ReviewedAt = nil
	c.ReviewedBy = ""
	c.ReviewerNotes = ""
	c.ItemName = it.Name
	c.ItemImage = it.MainImage
	if p, ok := s.points[it.PointID]; ok {
		c.CollectionPoint = p.Name
	}

	s.claims[c.ID] = &c
	it.Status = model.ItemStatusPending
	return copyClaim(&c), nil
}

// ReviewClaim moves a claim through its review state machine. Approval
// marks the item claimed and releases it from its point; rejection returns
// the item to available unless another open claim still references it.
func (s *Session) ReviewClaim(id int64, status, reviewer, notes string, appointment *time.Time) (model.ClaimRequest, error) {
	switch status {
	case model.ClaimStatusApproved, model.ClaimStatusRejected, model.ClaimStatusUnderReview:
	default:
		return model.ClaimRequest{}, fmt.Errorf("%w: unknown review decision %q", model.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.claims[id]
	if !ok {
		return model.ClaimRequest{}, fmt.Errorf("claim %d: %w", id, ErrClaimNotFound)
	}
	if model.ClaimFinal(c.Status) {
		return model.ClaimRequest{}, fmt.Errorf("claim %d: %w", id, ErrClaimFinalized)
	}
	if !model.ClaimTransitionAllowed(c.Status, status) {
		return model.ClaimRequest{}, fmt.Errorf("claim %d %s->%s: %w", id, c.Status, status, ErrBadTransition)
	}

	reviewedAt := time.Now()
	c.Status = status
	c.ReviewedAt = &reviewedAt
	c.ReviewedBy = reviewer
	c.ReviewerNotes = notes
	if appointment != nil {
		t := *appointment
		c.AppointmentDate = &t
	}

	it, hasItem := s.items[c.ItemID]
	switch status {
	case model.ClaimStatusApproved:
		if hasItem && it.Status != model.ItemStatusClaimed {
			s.releaseItem(it)
			it.Status = model.ItemStatusClaimed
		}
	case model.ClaimStatusRejected:
		if hasItem && it.Status == model.ItemStatusPending && !s.hasOpenClaim(c.ItemID) {
			it.Status = model.ItemStatusAvailable
		}
	}

	return copyClaim(c), nil
}

// hasOpenClaim reports whether any non-final claim references the item.
// Caller must hold s.mu.
func (s *Session) hasOpenClaim(itemID int64) bool {
	for _, c := range s.claims {
		if c.ItemID == itemID && !model.ClaimFinal(c.Status) {
			return true
		}
	}
	return false
}
