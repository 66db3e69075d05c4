package usecase

import (
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// DayTracker computes the logical day under a fixed UTC offset
type DayTracker struct {
	now         func() time.Time
	offsetHours int
}

// NewDayTracker creates a tracker; a nil now uses time.Now
func NewDayTracker(offsetHours int, now func() time.Time) *DayTracker {
	if now == nil {
		now = time.Now
	}
	return &DayTracker{now: now, offsetHours: offsetHours}
}

// Now returns the current instant
func (t *DayTracker) Now() time.Time {
	return t.now()
}

// Today returns the current logical day
func (t *DayTracker) Today() time.Weekday {
	return domain.LogicalDay(t.now(), t.offsetHours)
}
