package model

import "time"

// ClaimRequest represents a student's claim on a lost item.
//
// Invariant: ReviewedAt is set exactly when Status is not pending.
type ClaimRequest struct {
	ID                    int64      `json:"id"`
	Ref                   string     `json:"ref"`
	ItemID                int64      `json:"item_id"`
	ItemName              string     `json:"item_name"`
	ItemImage             string     `json:"item_image,omitempty"`
	ClaimantName          string     `json:"claimant_name"`
	ClaimantEmail         string     `json:"claimant_email"`
	ClaimantPhone         string     `json:"claimant_phone,omitempty"`
	ClaimantStudentID     string     `json:"claimant_student_id,omitempty"`
	Description           string     `json:"description"`
	IdentificationDetails string     `json:"identification_details"`
	Status                string     `json:"status"`
	SubmittedAt           time.Time  `json:"submitted_at"`
	ReviewedAt            *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy            string     `json:"reviewed_by,omitempty"`
	ReviewerNotes         string     `json:"reviewer_notes,omitempty"`
	CollectionPoint       string     `json:"collection_point"`
	AppointmentDate       *time.Time `json:"appointment_date,omitempty"`
	Documents             []string   `json:"verification_documents,omitempty"`
}

// Claim request statuses.
const (
	ClaimStatusPending     = "pending"
	ClaimStatusUnderReview = "under_review"
	ClaimStatusApproved    = "approved"
	ClaimStatusRejected    = "rejected"
)

// ClaimFinal reports whether status is terminal for a claim's review cycle.
func ClaimFinal(status string) bool {
	return status == ClaimStatusApproved || status == ClaimStatusRejected
}

// ClaimTransitionAllowed reports whether a claim review may move between
// the two statuses. A pending claim may be approved, rejected, or put
// under review; a claim under review may only be finalized. Approved and
// rejected are terminal.
func ClaimTransitionAllowed(from, to string) bool {
	switch from {
	case ClaimStatusPending:
		return to == ClaimStatusApproved || to == ClaimStatusRejected || to == ClaimStatusUnderReview
	case ClaimStatusUnderReview:
		return to == ClaimStatusApproved || to == ClaimStatusRejected
	}
	return false
}
