package materialize_slots

import (
	"context"

	materializeSlots "github.com/mzavt/PWS-SchedulerService/internal/usecase/materialize_slots"
)

type MaterializeSlotsUseCase interface {
	Execute(ctx context.Context) (*materializeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
