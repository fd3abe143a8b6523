package materialize_slots

import (
	"net/http"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
)

type Handler struct {
	useCase MaterializeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/materialize
// Запускает прогон материализации и возвращает отчет о прогоне
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/slots/materialize - Run failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/slots/materialize - Run finished: created=%d, skipped=%d",
		result.SlotsCreated, result.SlotsSkipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
