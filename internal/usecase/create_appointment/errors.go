package create_appointment

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrDuplicateClientBooking возвращается, когда у клиента уже есть подтвержденная запись на эту дату
	ErrDuplicateClientBooking = errors.New("create_appointment: client already has an appointment on this date")

	// ErrSlotUnavailable возвращается, когда время пересекается с подтвержденной записью
	ErrSlotUnavailable = errors.New("create_appointment: time slot is not available")

	// ErrConflictDetected возвращается, когда конкурентная запись заняла слот во время сохранения
	ErrConflictDetected = errors.New("create_appointment: conflicting appointment detected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
