package pricing

import "time"

// isWeekendDay reports whether the day of week qualifies for the weekend
// surcharge. Friday counts: pickup demand peaks Friday through Sunday.
func isWeekendDay(d time.Weekday) bool {
	return d == time.Friday || d == time.Saturday || d == time.Sunday
}

// IsWeekendPickup reports whether the pickup date falls on Friday, Saturday
// or Sunday. A nil date is treated as not weekend. The caller is expected to
// supply a time already localized to the deployment's pricing timezone so
// the day of week does not drift.
func IsWeekendPickup(pickup *time.Time) bool {
	if pickup == nil {
		return false
	}
	return isWeekendDay(pickup.Weekday())
}

// CountWeekendDays counts how many of the `days` consecutive calendar days
// starting at start (inclusive) fall on Friday, Saturday or Sunday. A nil
// start or non-positive day count yields 0. Uses pure calendar arithmetic,
// so month and year boundaries are handled by AddDate.
func CountWeekendDays(start *time.Time, days int) int {
	if start == nil || days <= 0 {
		return 0
	}

	count := 0
	for i := 0; i < days; i++ {
		if isWeekendDay(start.AddDate(0, 0, i).Weekday()) {
			count++
		}
	}
	return count
}
