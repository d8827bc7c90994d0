package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments"
)

const (
	msgInvalidParams = "некорректные параметры: ожидаются date=YYYY-MM-DD, time=HH:MM и durationMinutes"
	msgInvalidSlot   = "некорректный интервал: длительность должна быть положительной и не выходить за сутки"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date, time, durationMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := ParseQuery(q.Get("date"), q.Get("time"), q.Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.IsTimeSlotAvailable(r.Context(), query.Date, query.StartTime, query.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("GET /availability - Failed to check availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - date=%s, time=%s, duration=%d, available=%t",
		result.Date, result.StartTime, result.DurationMinutes, result.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
