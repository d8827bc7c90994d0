package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// AppointmentStore интерфейс хранилища записей
type AppointmentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByDateRange(ctx context.Context, start, end time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID int64, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// Catalog интерфейс каталога услуг
type Catalog interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
