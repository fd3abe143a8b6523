package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_FullMatrix(t *testing.T) {
	statuses := []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

	// Единственные 4 разрешённых перехода
	allowed := map[[2]BookingStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	// Проверяем все 16 пар
	for _, from := range statuses {
		for _, to := range statuses {
			got := CanTransitionTo(from, to)
			want := allowed[[2]BookingStatus{from, to}]
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, BookingStatus("in_progress").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_HoldsSlot(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted} {
		b := Booking{Status: status}
		assert.True(t, b.HoldsSlot(), "status %s", status)
	}

	cancelled := Booking{Status: StatusCancelled}
	assert.False(t, cancelled.HoldsSlot())
}

func TestBookingsFilter_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		filter       BookingsFilter
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{"defaults", BookingsFilter{}, 1, DefaultPageSize, 0},
		{"negative page", BookingsFilter{Page: -3, PageSize: 10}, 1, 10, 0},
		{"second page", BookingsFilter{Page: 2, PageSize: 25}, 2, 25, 25},
		{"oversized page size", BookingsFilter{Page: 1, PageSize: 1000}, 1, MaxPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Normalize()
			assert.Equal(t, tt.wantPage, tt.filter.Page)
			assert.Equal(t, tt.wantPageSize, tt.filter.PageSize)
			assert.Equal(t, tt.wantOffset, tt.filter.Offset())
		})
	}
}
