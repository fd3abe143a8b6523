package materialize_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

func TestTileWindow(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.TimeWindow
		duration int
		buffer   int
		want     []slotTimes
	}{
		{
			// Слот 11:30-12:30 выходит за окно и не создаётся
			name:     "morning window with buffer",
			window:   domain.TimeWindow{StartTime: "09:00", EndTime: "12:00"},
			duration: 60,
			buffer:   15,
			want: []slotTimes{
				{start: "09:00", end: "10:00"},
				{start: "10:15", end: "11:15"},
			},
		},
		{
			name:     "exact fit without buffer",
			window:   domain.TimeWindow{StartTime: "13:00", EndTime: "14:00"},
			duration: 30,
			buffer:   0,
			want: []slotTimes{
				{start: "13:00", end: "13:30"},
				{start: "13:30", end: "14:00"},
			},
		},
		{
			name:     "window shorter than slot",
			window:   domain.TimeWindow{StartTime: "09:00", EndTime: "09:30"},
			duration: 60,
			buffer:   0,
			want:     []slotTimes{},
		},
		{
			name:     "single slot fills window",
			window:   domain.TimeWindow{StartTime: "10:00", EndTime: "11:00"},
			duration: 60,
			buffer:   15,
			want: []slotTimes{
				{start: "10:00", end: "11:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tileWindow(tt.window, tt.duration, tt.buffer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotsForDay(t *testing.T) {
	policy := &domain.AvailabilityPolicy{
		ActiveWeekdays: []int{1, 2, 3, 4, 5}, // Пн-Пт
		DailyWindows: []domain.TimeWindow{
			{StartTime: "13:00", EndTime: "14:00"},
		},
		SlotDurationMinutes: 30,
		BufferMinutes:       0,
		HorizonDays:         14,
		ExcludedDates:       []string{"2026-09-01"},
	}

	t.Run("active weekday produces slots", func(t *testing.T) {
		tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Tuesday, tuesday.Weekday())

		slots, err := slotsForDay(policy, tuesday)
		require.NoError(t, err)
		require.Len(t, slots, 2)

		assert.Equal(t, types.TimeString("13:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("13:30"), slots[0].EndTime)
		assert.Equal(t, types.TimeString("13:30"), slots[1].StartTime)
		assert.Equal(t, types.TimeString("14:00"), slots[1].EndTime)
		assert.True(t, slots[0].Available)
	})

	t.Run("inactive weekday produces no slots", func(t *testing.T) {
		saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Saturday, saturday.Weekday())

		slots, err := slotsForDay(policy, saturday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("excluded date overrides active weekday", func(t *testing.T) {
		excluded := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Tuesday, excluded.Weekday())

		slots, err := slotsForDay(policy, excluded)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("multiple windows accumulate", func(t *testing.T) {
		p := &domain.AvailabilityPolicy{
			ActiveWeekdays: []int{1},
			DailyWindows: []domain.TimeWindow{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "13:00", EndTime: "17:00"},
			},
			SlotDurationMinutes: 60,
			BufferMinutes:       15,
		}

		monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		require.Equal(t, time.Monday, monday.Weekday())

		slots, err := slotsForDay(p, monday)
		require.NoError(t, err)
		// 09:00-12:00 → 2 слота, 13:00-17:00 → 13:00, 14:15, 15:30 → 3 слота
		require.Len(t, slots, 5)
		assert.Equal(t, types.TimeString("13:00"), slots[2].StartTime)
		assert.Equal(t, types.TimeString("15:30"), slots[4].StartTime)
	})
}
