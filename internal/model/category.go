package model

import "time"

// Category classifies lost items for browsing and filtering. Categories are
// archived (status set to inactive), never physically deleted.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon"`
	ItemCount   int       `json:"item_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Category statuses.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Known category icon keys.
const (
	IconLaptop   = "laptop"
	IconPhone    = "phone"
	IconWallet   = "wallet"
	IconKeys     = "keys"
	IconBook     = "book"
	IconClothing = "clothing"
	IconCard     = "card"
	IconBag      = "bag"
	IconOther    = "other"
)

// ValidIcon reports whether key is a known category icon.
func ValidIcon(key string) bool {
	switch key {
	case IconLaptop, IconPhone, IconWallet, IconKeys, IconBook,
		IconClothing, IconCard, IconBag, IconOther:
		return true
	}
	return false
}
