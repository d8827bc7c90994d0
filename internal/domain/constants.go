package domain

import "github.com/m04kA/SMC-BarberBookingService/pkg/types"

// Default schedule values
const (
	DefaultOpenTime    types.TimeString = "09:00"
	DefaultCloseTime   types.TimeString = "19:30"
	DefaultSlotStepMin                  = 30
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxServicesPerBooking = 10
	MaxDateRangeDays      = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultWorkingHours рабочие часы по умолчанию
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Open:  DefaultOpenTime,
		Close: DefaultCloseTime,
		Step:  DefaultSlotStepMin,
	}
}
