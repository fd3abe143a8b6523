package domain

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// TimeWindow recurring availability range within a working day, wall-clock
type TimeWindow struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// AvailabilityPolicy is the operator's recurring weekly availability
// A single editable document: the previous version is overwritten on update,
// no history is kept
type AvailabilityPolicy struct {
	ID int64

	// ActiveWeekdays weekday ordinals, 0=Sunday .. 6=Saturday
	ActiveWeekdays []int
	// DailyWindows recurring availability ranges within an active day;
	// may be disjoint (morning and afternoon), must not overlap each other
	DailyWindows []TimeWindow

	SlotDurationMinutes int
	BufferMinutes       int
	HorizonDays         int

	// ExcludedDates calendar dates ("YYYY-MM-DD") that never produce slots,
	// regardless of ActiveWeekdays
	ExcludedDates []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPolicy returns the policy persisted lazily on first read:
// Monday-Friday, 09:00-12:00 and 13:00-17:00, 60-minute consultations,
// 15-minute buffer, 30-day horizon, no exclusions
func DefaultPolicy() *AvailabilityPolicy {
	return &AvailabilityPolicy{
		ActiveWeekdays: []int{1, 2, 3, 4, 5},
		DailyWindows: []TimeWindow{
			{StartTime: "09:00", EndTime: "12:00"},
			{StartTime: "13:00", EndTime: "17:00"},
		},
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		HorizonDays:         DefaultHorizonDays,
		ExcludedDates:       []string{},
	}
}

// IsActiveWeekday returns true if the given weekday produces slots
func (p *AvailabilityPolicy) IsActiveWeekday(weekday time.Weekday) bool {
	for _, d := range p.ActiveWeekdays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// IsExcluded returns true if the date is in the exclusion list
func (p *AvailabilityPolicy) IsExcluded(date time.Time) bool {
	formatted := date.Format(DateFormat)
	for _, d := range p.ExcludedDates {
		if d == formatted {
			return true
		}
	}
	return false
}

// Stride returns the distance in minutes between consecutive slot starts
func (p *AvailabilityPolicy) Stride() int {
	return p.SlotDurationMinutes + p.BufferMinutes
}
