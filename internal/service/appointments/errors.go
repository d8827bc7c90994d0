package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidStateTransition возвращается при попытке изменить статус завершенной или отмененной записи
	ErrInvalidStateTransition = errors.New("appointments: invalid state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidTimeRange возвращается, когда начало диапазона позже конца
	ErrInvalidTimeRange = errors.New("appointments: invalid date range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
