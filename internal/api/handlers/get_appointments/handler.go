package get_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgIncompleteRange  = "нужно указать обе даты: startDate и endDate"
	msgInvalidDateRange = "некорректный диапазон дат"
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

// Handle GET /api/v1/appointments
// Query params: startDate, endDate (опционально, только вместе)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")

	var (
		result *models.AppointmentListResponse
		err    error
	)

	switch {
	case startStr == "" && endStr == "":
		result, err = h.service.GetAllActive(r.Context())

	case startStr == "" || endStr == "":
		h.logger.Warn("GET /appointments - Incomplete date range: startDate=%q, endDate=%q", startStr, endStr)
		handlers.RespondBadRequest(w, msgIncompleteRange)
		return

	default:
		start, parseErr := handlers.ParseDate(startStr)
		if parseErr != nil {
			h.logger.Warn("GET /appointments - Invalid startDate: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		end, parseErr := handlers.ParseDate(endStr)
		if parseErr != nil {
			h.logger.Warn("GET /appointments - Invalid endDate: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		result, err = h.service.GetInDateRange(r.Context(), start, end)
	}

	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("GET /appointments - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
