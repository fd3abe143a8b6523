package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	bookingRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/booking"
	"github.com/mzavt/PWS-SchedulerService/internal/integrations/mailer"
	"github.com/mzavt/PWS-SchedulerService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	mailerClient MailerClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		mailerClient: mailerClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по внутреннему идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичной ссылке
// Используется клиентами для проверки статуса своего бронирования
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает страницу бронирований, отсортированных от новых к старым
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings page=%d, pageSize=%d, status=%v", req.Page, req.PageSize, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{
		Bookings:   models.FromDomainBookings(bookings),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}, nil
}

// GetByDate получает все бронирования на дату независимо от статуса
// Используется административным расписанием дня
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.DayBookingsResponse, error) {
	s.logger.Info("GetByDate: fetching bookings for date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return &models.DayBookingsResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: models.FromDomainBookings(bookings),
	}, nil
}

// UpdateStatus выполняет переход статуса бронирования
// Допустимость перехода проверяется по таблице переходов до любых записей
// Переход в cancelled дополнительно освобождает слот в той же транзакции
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, target status=%s", req.BookingID, req.Status)

	// 1. Конвертируем и проверяем целевой статус
	targetStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: unknown status=%s for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}

	// 2. Получаем текущее бронирование
	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем допустимость перехода
	if !domain.CanTransitionTo(booking.Status, targetStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, targetStatus, req.BookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, targetStatus)
	}

	// 4. Применяем переход
	// Отмена освобождает слот; смена статуса и освобождение слота
	// должны быть видны либо обе, либо ни одна
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(ctx, req.BookingID, targetStatus); err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}

		if targetStatus == domain.StatusCancelled {
			key := domain.SlotKey{
				Date:      booking.Date,
				StartTime: booking.StartTime,
				EndTime:   booking.EndTime,
			}
			if err := s.slotRepo.Release(ctx, key); err != nil {
				return fmt.Errorf("release slot: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - transaction failed: %v", ErrInternal, err)
	}

	booking.Status = targetStatus

	// 5. Уведомляем клиента; недоступность рассылки не ломает переход
	s.notify(ctx, booking, string(targetStatus))

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", req.BookingID, targetStatus)
	return models.FromDomainBooking(booking), nil
}

// notify отправляет письмо о смене статуса с graceful degradation
func (s *Service) notify(ctx context.Context, b *domain.Booking, event string) {
	err := s.mailerClient.SendWithGracefulDegradation(ctx, &mailer.Notification{
		Recipient: b.ClientEmail,
		Reference: b.Reference,
		Event:     event,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Topic:     b.Topic,
	})
	if err != nil {
		s.logger.Warn("notify: notification skipped for reference=%s: %v", b.Reference, err)
	}
}
