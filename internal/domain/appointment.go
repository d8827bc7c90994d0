package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show" // Зарезервирован, переход в него пока не используется
)

// IsValid returns true if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true if no transition leaves this status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
// Разрешены только Confirmed -> Cancelled и Confirmed -> Completed
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != StatusConfirmed {
		return false
	}
	return next == StatusCancelled || next == StatusCompleted
}

// Appointment represents a booked visit to the barber
type Appointment struct {
	ID         int64
	ClientID   int64
	ServiceIDs []int64 // Порядок как в запросе, повторы допустимы
	Date       time.Time
	StartTime  types.TimeString

	// Зафиксированы на момент бронирования, изменения каталога на них не влияют
	DurationMinutes int
	TotalPriceCents int64

	Status AppointmentStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the appointment
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// StartMinutes returns start time as minutes since midnight
func (a *Appointment) StartMinutes() (int, error) {
	return a.StartTime.Minutes()
}
