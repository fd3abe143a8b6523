package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	slotRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/slot"
	"github.com/mzavt/PWS-SchedulerService/internal/integrations/mailer"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	mailerClient MailerClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		mailerClient: mailerClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Резервирование слота и создание бронирования выполняются в одной
// транзакции: из конкурентных запросов на один слот побеждает ровно один,
// остальные получают ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, date=%s, time=%s-%s",
		req.ClientEmail, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	key := domain.SlotKey{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Резервируем слот и создаем бронирование атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Условное резервирование: UPDATE проходит, только если слот
		// всё ещё свободен на момент записи
		if err := uc.slotRepo.Reserve(txCtx, key); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot %s %s-%s does not exist",
					req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
				return ErrSlotNotFound
			}
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s %s-%s is already reserved",
					req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slot: %v", err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 2.2. Создаем бронирование в статусе pending с денормализацией
		// времён слота
		booking := &domain.Booking{
			Reference:     uuid.NewString(),
			ClientName:    req.ClientName,
			ClientEmail:   req.ClientEmail,
			ClientPhone:   req.ClientPhone,
			ClientCompany: req.ClientCompany,
			Date:          req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Topic:         req.Topic,
			Message:       req.Message,
			Status:        domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// 3. Уведомляем клиента; недоступность рассылки не ломает бронирование
	notifyErr := uc.mailerClient.SendWithGracefulDegradation(ctx, &mailer.Notification{
		Recipient: result.ClientEmail,
		Reference: result.Reference,
		Event:     "created",
		Date:      result.Date.Format(domain.DateFormat),
		StartTime: result.StartTime.String(),
		EndTime:   result.EndTime.String(),
		Topic:     result.Topic,
	})
	if notifyErr != nil {
		uc.logger.Warn("CreateBooking: notification skipped for reference=%s: %v", result.Reference, notifyErr)
	}

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		ClientName:    result.ClientName,
		ClientEmail:   result.ClientEmail,
		ClientPhone:   result.ClientPhone,
		ClientCompany: result.ClientCompany,
		Date:          result.Date,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Topic:         result.Topic,
		Message:       result.Message,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
