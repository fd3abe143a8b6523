package get_available_slots

import (
	"context"
	"fmt"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Возвращает только свободные слоты, отсортированные по времени начала
// Для дат без материализованных слотов возвращает пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем свободные слоты на дату
	slots, err := uc.slotRepo.GetByDate(ctx, req.Date, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 3. Конвертируем в модель ответа
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d available slots for date=%s",
		len(result), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: result,
	}, nil
}
