package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestIsWeekendPickup(t *testing.T) {
	t.Run("Nil date", func(t *testing.T) {
		assert.False(t, IsWeekendPickup(nil))
	})

	tests := []struct {
		name     string
		pickup   *time.Time
		expected bool
	}{
		{"Monday", date(2024, time.January, 8), false},
		{"Tuesday", date(2024, time.January, 9), false},
		{"Wednesday", date(2024, time.January, 10), false},
		{"Thursday", date(2024, time.January, 4), false},
		{"Friday", date(2024, time.January, 5), true},
		{"Saturday", date(2024, time.January, 6), true},
		{"Sunday", date(2024, time.January, 7), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWeekendPickup(tt.pickup))
		})
	}
}

func TestCountWeekendDays(t *testing.T) {
	t.Run("Thursday start covers Fri/Sat/Sun", func(t *testing.T) {
		assert.Equal(t, 3, CountWeekendDays(date(2024, time.January, 4), 5))
	})

	t.Run("Monday start stays on weekdays", func(t *testing.T) {
		assert.Equal(t, 0, CountWeekendDays(date(2024, time.January, 8), 4))
	})

	t.Run("Nil start", func(t *testing.T) {
		assert.Equal(t, 0, CountWeekendDays(nil, 5))
	})

	t.Run("Zero days", func(t *testing.T) {
		assert.Equal(t, 0, CountWeekendDays(date(2024, time.January, 4), 0))
	})

	t.Run("Negative days", func(t *testing.T) {
		assert.Equal(t, 0, CountWeekendDays(date(2024, time.January, 4), -3))
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		// Fri Mar 29 through Mon Apr 1
		assert.Equal(t, 3, CountWeekendDays(date(2024, time.March, 29), 4))
	})

	t.Run("Cross year boundary", func(t *testing.T) {
		// Fri Dec 29 2023 through Mon Jan 1 2024
		assert.Equal(t, 3, CountWeekendDays(date(2023, time.December, 29), 4))
	})

	t.Run("Two full weeks", func(t *testing.T) {
		assert.Equal(t, 6, CountWeekendDays(date(2024, time.January, 8), 14))
	})
}
