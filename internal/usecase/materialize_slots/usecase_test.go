package materialize_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

type fakePolicyProvider struct {
	policy *domain.AvailabilityPolicy
}

func (f *fakePolicyProvider) GetDomain(_ context.Context) (*domain.AvailabilityPolicy, error) {
	return f.policy, nil
}

type fakeSlotRepo struct {
	slots map[string]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.Slot)}
}

func slotKey(s *domain.Slot) string {
	return fmt.Sprintf("%s|%s|%s", s.Date.Format(domain.DateFormat), s.StartTime, s.EndTime)
}

func (f *fakeSlotRepo) CreateIfAbsent(_ context.Context, s *domain.Slot) (bool, error) {
	key := slotKey(s)
	if _, ok := f.slots[key]; ok {
		return false, nil
	}
	copied := *s
	f.slots[key] = &copied
	return true, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestMaterializeSlots_Idempotent(t *testing.T) {
	policy := &domain.AvailabilityPolicy{
		ActiveWeekdays: []int{1, 2, 3, 4, 5},
		DailyWindows: []domain.TimeWindow{
			{StartTime: "09:00", EndTime: "12:00"},
		},
		SlotDurationMinutes: 60,
		BufferMinutes:       15,
		HorizonDays:         7,
		ExcludedDates:       []string{},
	}

	repo := newFakeSlotRepo()
	uc := NewUseCase(&fakePolicyProvider{policy: policy}, repo, nopLogger{})
	// Понедельник: горизонт 7 дней покрывает Пн-Пт + выходные
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)}

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// 5 рабочих дней по 2 слота в окне 09:00-12:00
	assert.Equal(t, 10, first.SlotsCreated)
	assert.Equal(t, 0, first.SlotsSkipped)
	assert.Equal(t, 7, first.DaysProcessed)
	assert.Equal(t, "2026-09-07", first.From)
	assert.Equal(t, "2026-09-13", first.To)

	// Между прогонами один слот резервируется
	reservedKey := "2026-09-08|09:00|10:00"
	require.Contains(t, repo.slots, reservedKey)
	repo.slots[reservedKey].Available = false

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Повторный прогон ничего не создает и не трогает доступность
	assert.Equal(t, 0, second.SlotsCreated)
	assert.Equal(t, 10, second.SlotsSkipped)
	assert.False(t, repo.slots[reservedKey].Available)
}

func TestMaterializeSlots_HorizonSkipsInactiveDays(t *testing.T) {
	policy := &domain.AvailabilityPolicy{
		ActiveWeekdays: []int{6}, // только суббота
		DailyWindows: []domain.TimeWindow{
			{StartTime: "10:00", EndTime: "12:00"},
		},
		SlotDurationMinutes: 60,
		BufferMinutes:       0,
		HorizonDays:         7,
		ExcludedDates:       []string{},
	}

	repo := newFakeSlotRepo()
	uc := NewUseCase(&fakePolicyProvider{policy: policy}, repo, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)}

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// В горизонте одна суббота (2026-09-12), в окне два слота
	assert.Equal(t, 2, result.SlotsCreated)
	require.Contains(t, repo.slots, "2026-09-12|10:00|11:00")
	require.Contains(t, repo.slots, "2026-09-12|11:00|12:00")
}
