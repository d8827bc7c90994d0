package check_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// AvailabilityQuery разобранные query параметры проверки
type AvailabilityQuery struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// ParseQuery разбирает date, time и durationMinutes
func ParseQuery(dateStr, timeStr, durationStr string) (*AvailabilityQuery, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %v", err)
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("time: %v", err)
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, fmt.Errorf("durationMinutes: %v", err)
	}

	return &AvailabilityQuery{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	}, nil
}
