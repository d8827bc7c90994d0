package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64            // ID клиента
	ServiceIDs []int64          // ID услуг, повторы допустимы
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала, например "10:00"
	Notes      *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ServiceIDs      []int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TotalPriceCents int64
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
