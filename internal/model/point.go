package model

import "time"

// CollectionPoint represents a campus office where found items are held
// until they are claimed or expire.
type CollectionPoint struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Address      string    `json:"address,omitempty"`
	Status       string    `json:"status"`
	Capacity     int       `json:"capacity"`
	CurrentItems int       `json:"current_items"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Description  string    `json:"description,omitempty"`

	// Joined field (not always populated): officers currently assigned here.
	Officers []Officer `json:"officers,omitempty"`
}

// Collection point statuses.
const (
	PointStatusActive   = "active"
	PointStatusInactive = "inactive"
)
