package materialize_slots

import (
	"context"
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

// PolicyProvider интерфейс для получения текущей политики доступности
type PolicyProvider interface {
	GetDomain(ctx context.Context) (*domain.AvailabilityPolicy, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
