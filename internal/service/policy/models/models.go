package models

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// Request модели

// TimeWindowRequest временное окно в запросе, времена в формате "HH:MM"
type TimeWindowRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdatePolicyRequest запрос на полную замену политики доступности
type UpdatePolicyRequest struct {
	ActiveWeekdays      []int               `json:"activeWeekdays"`
	DailyWindows        []TimeWindowRequest `json:"dailyWindows"`
	SlotDurationMinutes int                 `json:"slotDurationMinutes"`
	BufferMinutes       int                 `json:"bufferMinutes"`
	HorizonDays         int                 `json:"horizonDays"`
	ExcludedDates       []string            `json:"excludedDates"`
}

// ToDomainPolicy конвертирует запрос в domain модель
// Времена окон валидируются на уровне сервиса до вызова
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.AvailabilityPolicy {
	windows := make([]domain.TimeWindow, 0, len(r.DailyWindows))
	for _, w := range r.DailyWindows {
		windows = append(windows, domain.TimeWindow{
			StartTime: types.TimeString(w.StartTime),
			EndTime:   types.TimeString(w.EndTime),
		})
	}

	excluded := r.ExcludedDates
	if excluded == nil {
		excluded = []string{}
	}

	return &domain.AvailabilityPolicy{
		ActiveWeekdays:      r.ActiveWeekdays,
		DailyWindows:        windows,
		SlotDurationMinutes: r.SlotDurationMinutes,
		BufferMinutes:       r.BufferMinutes,
		HorizonDays:         r.HorizonDays,
		ExcludedDates:       excluded,
	}
}

// Response модели

// TimeWindowResponse временное окно в ответе
type TimeWindowResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PolicyResponse ответ с текущей политикой доступности
type PolicyResponse struct {
	ActiveWeekdays      []int                `json:"activeWeekdays"`
	DailyWindows        []TimeWindowResponse `json:"dailyWindows"`
	SlotDurationMinutes int                  `json:"slotDurationMinutes"`
	BufferMinutes       int                  `json:"bufferMinutes"`
	HorizonDays         int                  `json:"horizonDays"`
	ExcludedDates       []string             `json:"excludedDates"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.AvailabilityPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	windows := make([]TimeWindowResponse, 0, len(p.DailyWindows))
	for _, w := range p.DailyWindows {
		windows = append(windows, TimeWindowResponse{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	excluded := p.ExcludedDates
	if excluded == nil {
		excluded = []string{}
	}

	return &PolicyResponse{
		ActiveWeekdays:      p.ActiveWeekdays,
		DailyWindows:        windows,
		SlotDurationMinutes: p.SlotDurationMinutes,
		BufferMinutes:       p.BufferMinutes,
		HorizonDays:         p.HorizonDays,
		ExcludedDates:       excluded,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
