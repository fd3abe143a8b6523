package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	slotRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/slot"
	"github.com/mzavt/PWS-SchedulerService/internal/integrations/mailer"
	"github.com/mzavt/PWS-SchedulerService/pkg/ptr"
)

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[domain.SlotKey]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	repo := &fakeSlotRepo{slots: make(map[domain.SlotKey]*domain.Slot)}
	for _, s := range slots {
		repo.slots[s.Key()] = s
	}
	return repo
}

func (f *fakeSlotRepo) GetByKey(_ context.Context, key domain.SlotKey) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[key]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

// Reserve повторяет семантику условного UPDATE: под мьютексом проверка
// и запись атомарны, из конкурентных вызовов побеждает ровно один
func (f *fakeSlotRepo) Reserve(_ context.Context, key domain.SlotKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slots[key]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if !s.Available {
		return slotRepo.ErrSlotNotAvailable
	}
	s.Available = false
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, b)
	return b, nil
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

// passthroughTxManager выполняет функцию без реальной транзакции
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

func validRequest() *Request {
	return &Request{
		ClientName:  "Anna Petrova",
		ClientEmail: "anna@example.com",
		ClientPhone: ptr.Ptr("+7-900-000-00-00"),
		Date:        time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Topic:       "Architecture review",
		Message:     "Looking for help with service decomposition",
	}
}

func availableSlot() *domain.Slot {
	return &domain.Slot{
		ID:        1,
		Date:      time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		Available: true,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	slots := newFakeSlotRepo(availableSlot())
	bookings := &fakeBookingRepo{}
	notifier := &fakeMailer{}

	uc := NewUseCase(bookings, slots, notifier, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, resp.Reference)
	_, err = uuid.Parse(resp.Reference)
	assert.NoError(t, err, "reference must be a valid UUID")

	// Слот зарезервирован, уведомление отправлено
	key := domain.SlotKey{Date: resp.Date, StartTime: resp.StartTime, EndTime: resp.EndTime}
	assert.False(t, slots.slots[key].Available)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "created", notifier.sent[0].Event)
	assert.Equal(t, resp.Reference, notifier.sent[0].Reference)
}

func TestCreateBooking_SlotAlreadyReserved(t *testing.T) {
	slot := availableSlot()
	slot.Available = false
	slots := newFakeSlotRepo(slot)

	uc := NewUseCase(&fakeBookingRepo{}, slots, &fakeMailer{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBooking_SlotDoesNotExist(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, newFakeSlotRepo(), &fakeMailer{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateBooking_ConcurrentRequestsSingleWinner(t *testing.T) {
	const attempts = 50

	slots := newFakeSlotRepo(availableSlot())
	bookings := &fakeBookingRepo{}

	uc := NewUseCase(bookings, slots, &fakeMailer{}, passthroughTxManager{}, nopLogger{})

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	succeeded := 0
	rejected := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrSlotNotAvailable)
		rejected++
	}

	assert.Equal(t, 1, succeeded, "exactly one request must win the slot")
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, bookings.bookings, 1, "no double booking")
}

func TestCreateBooking_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty name", mutate: func(r *Request) { r.ClientName = "  " }},
		{name: "empty email", mutate: func(r *Request) { r.ClientEmail = "" }},
		{name: "email without at", mutate: func(r *Request) { r.ClientEmail = "anna.example.com" }},
		{name: "email without domain dot", mutate: func(r *Request) { r.ClientEmail = "anna@example" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "9am" }},
		{name: "start after end", mutate: func(r *Request) { r.StartTime = "11:00"; r.EndTime = "10:00" }},
		{name: "empty topic", mutate: func(r *Request) { r.Topic = "" }},
	}

	uc := NewUseCase(&fakeBookingRepo{}, newFakeSlotRepo(availableSlot()), &fakeMailer{}, passthroughTxManager{}, nopLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
