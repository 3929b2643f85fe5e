package model

import "time"

// LostItem represents a found item logged at a collection point.
//
// Invariant: MainImage equals Images[0] and Images is never empty.
type LostItem struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category"`
	FoundAt          string    `json:"found_at"`
	PointID          int64     `json:"point_id"`
	CheckpointOffice string    `json:"checkpoint_office"`
	FoundDate        time.Time `json:"found_date"`
	KeyedInDate      time.Time `json:"keyed_in_date"`
	RetentionDays    int       `json:"retention_days"`
	Status           string    `json:"status"`
	Founder          string    `json:"founder"`
	Features         []string  `json:"features,omitempty"`
	Images           []string  `json:"images"`
	MainImage        string    `json:"main_image"`

	// Joined fields (not always populated): expiry annotations derived
	// from KeyedInDate and RetentionDays at read time.
	DaysUntilExpiry int    `json:"days_until_expiry,omitempty"`
	UrgencyTier     string `json:"urgency_tier,omitempty"`
}

// Lost item statuses.
const (
	ItemStatusAvailable = "available"
	ItemStatusPending   = "pending_verification"
	ItemStatusClaimed   = "claimed"
	ItemStatusExpired   = "expired"
)
