package domain

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// BookingStatus represents the status of a consultation booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions таблица допустимых переходов статусов
// Ключ - пара (текущий статус, запрашиваемый статус)
// Отсутствие ключа означает запрещённый переход
var allowedTransitions = map[[2]BookingStatus]bool{
	{StatusPending, StatusConfirmed}:   true,
	{StatusPending, StatusCancelled}:   true,
	{StatusConfirmed, StatusCompleted}: true,
	{StatusConfirmed, StatusCancelled}: true,
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no transitions are possible out of the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo returns true if the transition from s to target is legal
func CanTransitionTo(s, target BookingStatus) bool {
	return allowedTransitions[[2]BookingStatus{s, target}]
}

// Booking represents a consultation booking bound to a reserved slot
// Date, StartTime and EndTime are denormalized copies of the slot's times:
// the booking keeps its original times even if the slot is later freed and
// re-reserved by someone else
type Booking struct {
	ID        int64
	Reference string // публичный UUID для доступа клиента к своему бронированию

	// Requester data
	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	ClientCompany *string

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Topic   string
	Message string

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HoldsSlot returns true while the booking keeps its slot reserved
// Only cancellation releases the slot; a completed booking keeps it
func (b *Booking) HoldsSlot() bool {
	return b.Status != StatusCancelled
}

// BookingsFilter фильтр для постраничного получения бронирований
type BookingsFilter struct {
	Status   *BookingStatus // Фильтр по статусу (опционально)
	Page     int            // Номер страницы, начиная с 1
	PageSize int            // Размер страницы (0 - DefaultPageSize)
}

// Normalize приводит параметры пагинации к допустимым значениям
func (f *BookingsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Offset возвращает смещение для SQL запроса
func (f *BookingsFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
