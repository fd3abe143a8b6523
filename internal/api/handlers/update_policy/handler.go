package update_policy

import (
	"errors"
	"net/http"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
	"github.com/mzavt/PWS-SchedulerService/internal/service/policy"
	"github.com/mzavt/PWS-SchedulerService/internal/service/policy/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректные параметры политики"
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

// Handle PUT /api/v1/admin/policy
// Полностью заменяет политику; при ошибке валидации сохранённая
// политика остаётся без изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /admin/policy - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /admin/policy - Failed to update policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/policy - Policy updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
