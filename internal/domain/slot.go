package domain

import "github.com/m04kA/SMC-BarberBookingService/pkg/types"

// AvailableSlot represents a start time where the requested services fit
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// WorkingHours рабочие часы барбера на день
type WorkingHours struct {
	Open  types.TimeString // Первое время начала
	Close types.TimeString // Все записи должны закончиться к этому времени
	Step  int              // Шаг сетки слотов в минутах
}
