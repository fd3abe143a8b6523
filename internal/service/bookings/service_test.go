package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	bookingRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/booking"
	"github.com/mzavt/PWS-SchedulerService/internal/integrations/mailer"
	"github.com/mzavt/PWS-SchedulerService/internal/service/bookings/models"
	"github.com/mzavt/PWS-SchedulerService/pkg/ptr"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	byID     map[int64]*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		byID:     make(map[int64]*domain.Booking),
		statuses: make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		repo.byID[b.ID] = b
		repo.statuses[b.ID] = b.Status
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	copied.Status = f.statuses[id]
	return &copied, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.byID {
		if b.Reference == reference {
			copied := *b
			copied.Status = f.statuses[id]
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for id, b := range f.byID {
		if filter.Status != nil && f.statuses[id] != *filter.Status {
			continue
		}
		copied := *b
		copied.Status = f.statuses[id]
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for id, b := range f.byID {
		if b.Date.Equal(date) {
			copied := *b
			copied.Status = f.statuses[id]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statuses[id] = status
	return nil
}

type fakeSlotRepo struct {
	mu       sync.Mutex
	released []domain.SlotKey
}

func (f *fakeSlotRepo) Release(_ context.Context, key domain.SlotKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, key)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []*mailer.Notification
}

func (f *fakeMailer) SendWithGracefulDegradation(_ context.Context, n *mailer.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Reference:   "5f0c2a1e-9a6d-4f8a-b64e-2f3a76a1c001",
		ClientName:  "Anna Petrova",
		ClientEmail: "anna@example.com",
		Date:        time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Topic:       "Architecture review",
		Status:      status,
	}
}

func newTestService(repo *fakeBookingRepo, slots *fakeSlotRepo, notifier *fakeMailer) *Service {
	return NewService(repo, slots, notifier, passthroughTxManager{}, nopLogger{})
}

func TestUpdateStatus_ConfirmPending(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	slots := &fakeSlotRepo{}
	notifier := &fakeMailer{}
	svc := newTestService(repo, slots, notifier)

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Status:    "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.statuses[1])
	// Подтверждение не освобождает слот
	assert.Empty(t, slots.released)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "confirmed", notifier.sent[0].Event)
}

func TestUpdateStatus_CancellationReleasesSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	slots := &fakeSlotRepo{}
	svc := newTestService(repo, slots, &fakeMailer{})

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Status:    "cancelled",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.Len(t, slots.released, 1)
	assert.Equal(t, domain.SlotKey{
		Date:      time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	}, slots.released[0])
}

func TestUpdateStatus_CompletionKeepsSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	slots := &fakeSlotRepo{}
	svc := newTestService(repo, slots, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Status:    "completed",
	})
	require.NoError(t, err)

	// Завершённая консультация удерживает слот
	assert.Empty(t, slots.released)
}

func TestUpdateStatus_InvalidTransitionLeavesStatusUntouched(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.BookingStatus
		target string
	}{
		{name: "pending to completed", from: domain.StatusPending, target: "completed"},
		{name: "cancelled to confirmed", from: domain.StatusCancelled, target: "confirmed"},
		{name: "completed to cancelled", from: domain.StatusCompleted, target: "cancelled"},
		{name: "confirmed to pending", from: domain.StatusConfirmed, target: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.from))
			slots := &fakeSlotRepo{}
			svc := newTestService(repo, slots, &fakeMailer{})

			_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				BookingID: 1,
				Status:    tt.target,
			})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, repo.statuses[1], "status must remain unchanged")
			assert.Empty(t, slots.released)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 1,
		Status:    "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_BookingNotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeSlotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: 42,
		Status:    "confirmed",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeSlotRepo{}, &fakeMailer{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetByReference(t *testing.T) {
	booking := testBooking(1, domain.StatusPending)
	svc := newTestService(newFakeBookingRepo(booking), &fakeSlotRepo{}, &fakeMailer{})

	resp, err := svc.GetByReference(context.Background(), booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, resp.Reference)

	_, err = svc.GetByReference(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
