package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStatusMismatch возвращается, когда текущий статус записи не совпал с ожидаемым
	ErrStatusMismatch = errors.New("appointment.repository: status mismatch")

	// ErrConflictDetected возвращается, когда БД отклонила запись из-за пересечения
	// (exclusion constraint) или конкурентной сериализуемой транзакции
	ErrConflictDetected = errors.New("appointment.repository: conflicting appointment")

	// ErrDuplicateClientBooking возвращается при нарушении уникальности (client_id, appointment_date)
	ErrDuplicateClientBooking = errors.New("appointment.repository: client already has appointment on this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
