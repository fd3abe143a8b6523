package policy

import (
	"context"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

// PolicyRepository интерфейс репозитория политики доступности
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.AvailabilityPolicy, error)
	Create(ctx context.Context, policy *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error)
	Update(ctx context.Context, policy *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
