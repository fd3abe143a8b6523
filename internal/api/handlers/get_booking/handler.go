package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mzavt/PWS-SchedulerService/internal/api/handlers"
	"github.com/mzavt/PWS-SchedulerService/internal/service/bookings"
)

const (
	msgInvalidReference = "некорректная ссылка на бронирование"
	msgNotFound         = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reference из URL
	vars := mux.Vars(r)
	reference := vars["reference"]

	if _, err := uuid.Parse(reference); err != nil {
		h.logger.Warn("GET /bookings/{reference} - Invalid reference: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{reference} - Failed to get booking: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{reference} - Booking fetched: reference=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
