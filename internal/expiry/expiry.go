// Package expiry derives retention countdowns and urgency tiers for held
// items. Everything here is pure; callers supply the reference time.
package expiry

import "time"

// Urgency tiers.
const (
	TierUrgent  = "urgent"
	TierWarning = "warning"
	TierNormal  = "normal"
)

// DaysUntil returns the number of days, rounded up, until the retention
// window starting at keyedIn lapses. Zero or negative means the item has
// expired.
func DaysUntil(keyedIn time.Time, retentionDays int, now time.Time) int {
	deadline := keyedIn.AddDate(0, 0, retentionDays)
	diff := deadline.Sub(now)

	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Expired reports whether a countdown from DaysUntil means the retention
// window has lapsed.
func Expired(days int) bool {
	return days <= 0
}

// Tier maps a countdown to an urgency tier. Bounds are inclusive on the
// lower tier: exactly 7 days is urgent, exactly 14 is warning.
func Tier(days int) string {
	switch {
	case days <= 7:
		return TierUrgent
	case days <= 14:
		return TierWarning
	default:
		return TierNormal
	}
}
