package materialize_slots

import (
	"context"
	"fmt"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

// UseCase use case материализации слотов по текущей политике
type UseCase struct {
	policyProvider PolicyProvider
	slotRepo       SlotRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	policyProvider PolicyProvider,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		policyProvider: policyProvider,
		slotRepo:       slotRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute материализует слоты на скользящем горизонте
// Горизонт покрывает сегодняшний день и следующие horizonDays - 1 дней
// Прогон идемпотентен: уже существующие слоты не трогаются, их
// доступность сохраняется; считаются созданные и пропущенные слоты
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.logger.Info("MaterializeSlots: starting run")

	// 1. Получаем текущую политику (лениво создаётся дефолтная)
	policy, err := uc.policyProvider.GetDomain(ctx)
	if err != nil {
		uc.logger.Error("MaterializeSlots: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	today := truncateToDay(uc.timeProvider.Now())
	lastDay := today.AddDate(0, 0, policy.HorizonDays-1)

	created := 0
	skipped := 0

	// 2. Обходим горизонт по дням
	for offset := 0; offset < policy.HorizonDays; offset++ {
		date := today.AddDate(0, 0, offset)

		slots, err := slotsForDay(policy, date)
		if err != nil {
			uc.logger.Error("MaterializeSlots: failed to build slots for date=%s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to build slots for date %s: %v",
				ErrInternal, date.Format(domain.DateFormat), err)
		}

		// 3. Вставляем слоты; существующие пропускаются на уровне БД
		for _, slot := range slots {
			wasCreated, err := uc.slotRepo.CreateIfAbsent(ctx, slot)
			if err != nil {
				uc.logger.Error("MaterializeSlots: failed to create slot %s %s-%s: %v",
					date.Format(domain.DateFormat), slot.StartTime, slot.EndTime, err)
				return nil, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}

			if wasCreated {
				created++
			} else {
				skipped++
			}
		}
	}

	uc.logger.Info("MaterializeSlots: run finished, horizon %s..%s, created=%d, skipped=%d",
		today.Format(domain.DateFormat), lastDay.Format(domain.DateFormat), created, skipped)

	return &Response{
		From:          today.Format(domain.DateFormat),
		To:            lastDay.Format(domain.DateFormat),
		DaysProcessed: policy.HorizonDays,
		SlotsCreated:  created,
		SlotsSkipped:  skipped,
	}, nil
}
