package get_policy

import (
	"net/http"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/policy
// Если политика ещё не настроена, возвращает созданную дефолтную
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/policy - Failed to get policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/policy - Policy fetched")
	handlers.RespondJSON(w, http.StatusOK, result)
}
