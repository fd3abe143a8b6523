package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	policyRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/policy"
	"github.com/mzavt/PWS-SchedulerService/internal/service/policy/models"
)

type fakePolicyRepo struct {
	stored  *domain.AvailabilityPolicy
	creates int
	updates int
}

func (f *fakePolicyRepo) Get(_ context.Context) (*domain.AvailabilityPolicy, error) {
	if f.stored == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakePolicyRepo) Create(_ context.Context, p *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error) {
	f.creates++
	copied := *p
	f.stored = &copied
	return p, nil
}

func (f *fakePolicyRepo) Update(_ context.Context, p *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error) {
	f.updates++
	copied := *p
	f.stored = &copied
	return p, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validUpdateRequest() *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		ActiveWeekdays: []int{1, 3, 5},
		DailyWindows: []models.TimeWindowRequest{
			{StartTime: "10:00", EndTime: "16:00"},
		},
		SlotDurationMinutes: 45,
		BufferMinutes:       10,
		HorizonDays:         14,
		ExcludedDates:       []string{"2026-12-31"},
	}
}

func TestGet_LazilyPersistsDefaultPolicy(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	// Первое чтение создает и сохраняет дефолтную политику
	assert.Equal(t, 1, repo.creates)
	require.NotNil(t, repo.stored)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.ActiveWeekdays)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultBufferMinutes, resp.BufferMinutes)
	assert.Equal(t, domain.DefaultHorizonDays, resp.HorizonDays)
	require.Len(t, resp.DailyWindows, 2)
	assert.Equal(t, "09:00", resp.DailyWindows[0].StartTime)
	assert.Equal(t, "17:00", resp.DailyWindows[1].EndTime)

	// Повторное чтение не создает вторую
	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
}

func TestUpdate_ReplacesPolicy(t *testing.T) {
	repo := &fakePolicyRepo{stored: domain.DefaultPolicy()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, []int{1, 3, 5}, resp.ActiveWeekdays)
	assert.Equal(t, 45, resp.SlotDurationMinutes)
	assert.Equal(t, []string{"2026-12-31"}, resp.ExcludedDates)
}

func TestUpdate_InvalidInputLeavesStoredPolicyUntouched(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.UpdatePolicyRequest)
	}{
		{name: "weekday above range", mutate: func(r *models.UpdatePolicyRequest) { r.ActiveWeekdays = []int{7} }},
		{name: "negative weekday", mutate: func(r *models.UpdatePolicyRequest) { r.ActiveWeekdays = []int{-1} }},
		{name: "duplicate weekday", mutate: func(r *models.UpdatePolicyRequest) { r.ActiveWeekdays = []int{1, 1} }},
		{name: "malformed window time", mutate: func(r *models.UpdatePolicyRequest) {
			r.DailyWindows = []models.TimeWindowRequest{{StartTime: "9am", EndTime: "16:00"}}
		}},
		{name: "window start equals end", mutate: func(r *models.UpdatePolicyRequest) {
			r.DailyWindows = []models.TimeWindowRequest{{StartTime: "10:00", EndTime: "10:00"}}
		}},
		{name: "window start after end", mutate: func(r *models.UpdatePolicyRequest) {
			r.DailyWindows = []models.TimeWindowRequest{{StartTime: "16:00", EndTime: "10:00"}}
		}},
		{name: "duration too small", mutate: func(r *models.UpdatePolicyRequest) { r.SlotDurationMinutes = 1 }},
		{name: "duration too large", mutate: func(r *models.UpdatePolicyRequest) { r.SlotDurationMinutes = 1000 }},
		{name: "negative buffer", mutate: func(r *models.UpdatePolicyRequest) { r.BufferMinutes = -5 }},
		{name: "zero horizon", mutate: func(r *models.UpdatePolicyRequest) { r.HorizonDays = 0 }},
		{name: "horizon too large", mutate: func(r *models.UpdatePolicyRequest) { r.HorizonDays = 1000 }},
		{name: "malformed excluded date", mutate: func(r *models.UpdatePolicyRequest) { r.ExcludedDates = []string{"31-12-2026"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePolicyRepo{stored: domain.DefaultPolicy()}
			svc := NewService(repo, nopLogger{})

			req := validUpdateRequest()
			tt.mutate(req)

			_, err := svc.Update(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, repo.updates, "stored policy must remain unchanged")
			assert.Equal(t, domain.DefaultSlotDurationMinutes, repo.stored.SlotDurationMinutes)
		})
	}
}
