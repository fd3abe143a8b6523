package domain

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// Slot is a single bookable time interval on a specific date
// The natural key is (Date, StartTime, EndTime); the surrogate ID exists for
// storage convenience only and is never used for uniqueness. Slots are never
// deleted once created: cancelling a booking flips Available back to true
type Slot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotKey natural identity of a slot
type SlotKey struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Key returns the slot's natural identity
func (s *Slot) Key() SlotKey {
	return SlotKey{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}
