package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
	"github.com/mzavt/PWS-SchedulerService/internal/service/bookings"
	"github.com/mzavt/PWS-SchedulerService/internal/service/bookings/models"
)

const (
	msgInvalidPage     = "некорректный номер страницы"
	msgInvalidPageSize = "некорректный размер страницы"
	msgInvalidStatus   = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: page, pageSize, status (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	// Извлекаем пагинацию из query параметров
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			h.logger.Warn("GET /admin/bookings - Invalid page: %s", pageStr)
			handlers.RespondBadRequest(w, msgInvalidPage)
			return
		}
		req.Page = page
	}

	if pageSizeStr := r.URL.Query().Get("pageSize"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 {
			h.logger.Warn("GET /admin/bookings - Invalid page size: %s", pageSizeStr)
			handlers.RespondBadRequest(w, msgInvalidPageSize)
			return
		}
		req.PageSize = pageSize
	}

	// Опциональный фильтр по статусу
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /admin/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Returned %d bookings (page=%d, total=%d)",
		len(result.Bookings), result.Page, result.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
