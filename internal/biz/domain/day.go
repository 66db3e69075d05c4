package domain

import "time"

// LogicalDay returns the day of week of now shifted by a fixed UTC offset in hours.
func LogicalDay(now time.Time, offsetHours int) time.Weekday {
	return now.UTC().Add(time.Duration(offsetHours) * time.Hour).Weekday()
}

// HasCrossedDay reports whether the logical day moved since it was cached
func HasCrossedDay(cached, fresh time.Weekday) bool {
	return cached != fresh
}
