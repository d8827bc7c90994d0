package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date       time.Time // Дата (без времени)
	ServiceIDs []int64   // Услуги, которые клиент хочет получить за один визит
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	DurationMinutes int   // Суммарная длительность выбранных услуг
	TotalPriceCents int64 // Суммарная цена выбранных услуг
	Slots           []Slot
}

// Slot модель свободного слота
type Slot struct {
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время окончания (не включается)
}
