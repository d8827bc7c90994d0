package get_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAllActive(ctx context.Context) (*models.AppointmentListResponse, error)
	GetInDateRange(ctx context.Context, start, end time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
