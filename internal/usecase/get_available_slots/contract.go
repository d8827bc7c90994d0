package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// AppointmentStore интерфейс хранилища записей
type AppointmentStore interface {
	ListByDate(ctx context.Context, date time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// Catalog интерфейс каталога услуг
type Catalog interface {
	Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Service, []int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
