package materialize_slots

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// slotTimes пара времён одного слота внутри окна
type slotTimes struct {
	start types.TimeString
	end   types.TimeString
}

// tileWindow замощает окно слотами фиксированной длительности
// Слоты укладываются с шагом duration + buffer от начала окна
// Частичный слот, не помещающийся в окно целиком, не создаётся
//
// Пример: окно 09:00-12:00, длительность 60, буфер 15 →
// 09:00-10:00 и 10:15-11:15 (слот 11:30-12:30 выходит за окно)
func tileWindow(window domain.TimeWindow, durationMinutes, bufferMinutes int) ([]slotTimes, error) {
	stride := durationMinutes + bufferMinutes

	slots := make([]slotTimes, 0)
	start := window.StartTime

	for {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			// Слот пересекает полночь - дальше укладывать нечего
			break
		}

		if end.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, slotTimes{start: start, end: end})

		next, err := start.AddMinutes(stride)
		if err != nil {
			break
		}
		start = next
	}

	return slots, nil
}

// slotsForDay строит все слоты на дату по политике
// Неактивный день недели или исключённая дата дают пустой список:
// исключение даты имеет приоритет над активным днём недели
func slotsForDay(policy *domain.AvailabilityPolicy, date time.Time) ([]*domain.Slot, error) {
	if !policy.IsActiveWeekday(date.Weekday()) {
		return nil, nil
	}
	if policy.IsExcluded(date) {
		return nil, nil
	}

	slots := make([]*domain.Slot, 0)

	for _, window := range policy.DailyWindows {
		tiled, err := tileWindow(window, policy.SlotDurationMinutes, policy.BufferMinutes)
		if err != nil {
			return nil, err
		}

		for _, t := range tiled {
			slots = append(slots, &domain.Slot{
				Date:      date,
				StartTime: t.start,
				EndTime:   t.end,
				Available: true,
			})
		}
	}

	return slots, nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
