package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/locker"
)

// AppointmentStore интерфейс хранилища записей
type AppointmentStore interface {
	InsertIfNoConflict(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	ExistsForClientOnDate(ctx context.Context, clientID int64, date time.Time, statuses []domain.AppointmentStatus) (bool, error)
}

// Catalog интерфейс каталога услуг
type Catalog interface {
	Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Service, []int64, error)
}

// ClientDirectory интерфейс справочника клиентов
type ClientDirectory interface {
	Exists(ctx context.Context, clientID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка по дате на время проверки и вставки
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// OutcomeRecorder счетчик результатов создания записи
type OutcomeRecorder interface {
	ObserveAppointmentOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
