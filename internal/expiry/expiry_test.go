package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntil(t *testing.T) {
	keyedIn := date(2025, time.January, 1)

	assert.Equal(t, 7, DaysUntil(keyedIn, 7, keyedIn))
	assert.Equal(t, 1, DaysUntil(keyedIn, 7, date(2025, time.January, 7)))
	assert.Equal(t, 0, DaysUntil(keyedIn, 7, date(2025, time.January, 8)))
	assert.Equal(t, -2, DaysUntil(keyedIn, 7, date(2025, time.January, 10)))
}

func TestDaysUntilRoundsUpPartialDays(t *testing.T) {
	keyedIn := time.Date(2025, time.March, 1, 15, 30, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 8, 9, 0, 0, 0, time.UTC)

	// 6 hours and change remain, so one day is still counted.
	assert.Equal(t, 1, DaysUntil(keyedIn, 7, now))
}

func TestExpired(t *testing.T) {
	assert.False(t, Expired(1))
	assert.True(t, Expired(0))
	assert.True(t, Expired(-3))
}

func TestTierBounds(t *testing.T) {
	assert.Equal(t, TierUrgent, Tier(-1))
	assert.Equal(t, TierUrgent, Tier(0))
	assert.Equal(t, TierUrgent, Tier(7))
	assert.Equal(t, TierWarning, Tier(8))
	assert.Equal(t, TierWarning, Tier(14))
	assert.Equal(t, TierNormal, Tier(15))
	assert.Equal(t, TierNormal, Tier(90))
}
