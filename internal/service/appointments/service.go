package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBookingService/internal/schedule"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// Service сервис жизненного цикла записей и запросов к ним
type Service struct {
	store   AppointmentStore
	catalog Catalog
	logger  Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(store AppointmentStore, catalog Catalog, logger Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// IsTimeSlotAvailable проверяет, свободно ли время на дату
// Ничего не резервирует: к моменту записи результат может устареть
func (s *Service) IsTimeSlotAvailable(ctx context.Context, date time.Time, start types.TimeString, durationMinutes int) (*models.AvailabilityResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	interval, err := schedule.NewInterval(start, durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booked, err := s.store.ListByDate(ctx, date, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("IsTimeSlotAvailable: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: IsTimeSlotAvailable - repository error: %v", ErrInternal, err)
	}

	index, err := schedule.NewIndex(booked)
	if err != nil {
		return nil, fmt.Errorf("%w: IsTimeSlotAvailable - build index: %v", ErrInternal, err)
	}

	return &models.AvailabilityResponse{
		Date:            date.Format(domain.DateFormat),
		StartTime:       interval.StartTime().String(),
		EndTime:         interval.EndTime().String(),
		DurationMinutes: durationMinutes,
		Available:       index.IsFree(interval),
	}, nil
}

// Cancel переводит подтвержденную запись в статус cancelled
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Cancel", id, domain.StatusCancelled)
}

// Complete переводит подтвержденную запись в статус completed
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Complete", id, domain.StatusCompleted)
}

// transition меняет статус записи
// Повторная отмена или завершение не меняют запись и возвращают ErrInvalidStateTransition
func (s *Service) transition(ctx context.Context, op string, id int64, to domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	s.logger.Info("%s: appointment id=%d -> %s", op, id, to)

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.translateStoreError(op, id, err)
	}

	if !current.Status.CanTransitionTo(to) {
		s.logger.Warn("%s: appointment id=%d is %s, cannot move to %s", op, id, current.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, current.Status, to)
	}

	// Условный UPDATE: конкурентный переход из confirmed выиграет только один
	updated, err := s.store.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusMismatch) {
			s.logger.Warn("%s: appointment id=%d changed concurrently", op, id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidStateTransition)
		}
		return nil, s.translateStoreError(op, id, err)
	}

	s.logger.Info("%s: appointment id=%d is now %s", op, id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// GetByID получает запись по ID в любом статусе
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.translateStoreError("GetByID", id, err)
	}
	return models.FromDomainAppointment(a), nil
}

// GetByDate получает подтвержденные записи на дату
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.AppointmentListResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	list, err := s.store.ListByDate(ctx, date, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// GetByClient получает подтвержденные записи клиента
func (s *Service) GetByClient(ctx context.Context, clientID int64) (*models.AppointmentListResponse, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	list, err := s.store.ListByClient(ctx, clientID, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetByClient - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// GetAllActive получает все подтвержденные записи по (дата, время)
func (s *Service) GetAllActive(ctx context.Context) (*models.AppointmentListResponse, error) {
	list, err := s.store.ListByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetAllActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// GetInDateRange получает подтвержденные записи в диапазоне дат включительно
func (s *Service) GetInDateRange(ctx context.Context, start, end time.Time) (*models.AppointmentListResponse, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidTimeRange,
			start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}
	if end.Sub(start) > domain.MaxDateRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidTimeRange, domain.MaxDateRangeDays)
	}

	list, err := s.store.ListByDateRange(ctx, start, end, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("GetInDateRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetInDateRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// GetServiceMenu получает активные услуги каталога
func (s *Service) GetServiceMenu(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalog.ListActive(ctx)
	if err != nil {
		s.logger.Error("GetServiceMenu: catalog error: %v", err)
		return nil, fmt.Errorf("%w: GetServiceMenu - catalog error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

func (s *Service) translateStoreError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
