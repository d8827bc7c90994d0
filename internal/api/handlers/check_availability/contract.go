package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

type AppointmentService interface {
	IsTimeSlotAvailable(ctx context.Context, date time.Time, start types.TimeString, durationMinutes int) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
