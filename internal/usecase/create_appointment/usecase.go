package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBookingService/internal/schedule"
	"github.com/m04kA/SMC-BarberBookingService/pkg/locker"
	"github.com/m04kA/SMC-BarberBookingService/pkg/metrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/txmanager"
)

// lockKeyPrefix префикс ключа блокировки дня
const lockKeyPrefix = "appointments:"

// UseCase use case для создания записи
type UseCase struct {
	store     AppointmentStore
	catalog   Catalog
	clients   ClientDirectory
	txManager TransactionManager
	locker    Locker
	outcomes  OutcomeRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
// outcomes может быть nil
func NewUseCase(
	store AppointmentStore,
	catalog Catalog,
	clients ClientDirectory,
	txManager TransactionManager,
	locker Locker,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:     store,
		catalog:   catalog,
		clients:   clients,
		txManager: txManager,
		locker:    locker,
		outcomes:  outcomes,
		logger:    logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка пересечений и вставка выполняются под блокировкой даты и в сериализуемой
// транзакции, поэтому из конкурентных запросов на один слот успешен только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.observe(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CreateAppointment: client=%d, services=%v, date=%s, time=%s",
		req.ClientID, req.ServiceIDs, dateStr, req.StartTime)

	// 2. Проверяем клиента
	exists, err := uc.clients.Exists(ctx, req.ClientID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to check client: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
		return nil, ErrClientNotFound
	}

	// 3. Получаем услуги, частичный результат не допускается
	services, missing, err := uc.catalog.Lookup(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to lookup services: %v", err)
		return nil, fmt.Errorf("%w: failed to lookup services: %v", ErrInternal, err)
	}

	// 4. Суммируем цену и длительность
	totals, notSummed := domain.SumServices(req.ServiceIDs, services)
	if len(missing) > 0 || len(notSummed) > 0 {
		if len(missing) == 0 {
			missing = notSummed
		}
		uc.logger.Warn("CreateAppointment: services %v not found", missing)
		return nil, fmt.Errorf("%w: ids=%v", ErrServiceNotFound, missing)
	}

	// 5. Интервал записи
	interval, err := schedule.NewInterval(req.StartTime, totals.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Блокируем дату на время проверки и вставки
	release, err := uc.locker.Acquire(ctx, lockKeyPrefix+dateStr)
	if err != nil {
		if errors.Is(err, locker.ErrLockTimeout) {
			uc.logger.Warn("CreateAppointment: date %s is busy: %v", dateStr, err)
			return nil, fmt.Errorf("%w: date %s is being booked concurrently", ErrConflictDetected, dateStr)
		}
		uc.logger.Error("CreateAppointment: failed to acquire lock for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer release()

	var created *domain.Appointment

	// 7. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Одна подтвержденная запись на клиента в день
		duplicate, err := uc.store.ExistsForClientOnDate(txCtx, req.ClientID, req.Date,
			[]domain.AppointmentStatus{domain.StatusConfirmed})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrConflictDetected) {
				return fmt.Errorf("%w: %v", ErrConflictDetected, err)
			}
			return fmt.Errorf("%w: failed to check client appointments: %v", ErrInternal, err)
		}
		if duplicate {
			uc.logger.Warn("CreateAppointment: client id=%d already booked on %s", req.ClientID, dateStr)
			return ErrDuplicateClientBooking
		}

		// 7.2. Подтвержденные записи дня (внутри транзакции с FOR UPDATE)
		booked, err := uc.store.ListByDate(txCtx, req.Date, domain.StatusConfirmed)
		if err != nil {
			// Параллельная транзакция изменила записи дня (40001)
			if errors.Is(err, appointmentRepo.ErrConflictDetected) {
				return fmt.Errorf("%w: %v", ErrConflictDetected, err)
			}
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		index, err := schedule.NewIndex(booked)
		if err != nil {
			return fmt.Errorf("%w: failed to build index: %v", ErrInternal, err)
		}

		if conflicts := index.Conflicts(interval); len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: %s on %s overlaps appointment id=%d",
				interval, dateStr, conflicts[0].ID)
			return fmt.Errorf("%w: %s overlaps %d appointment(s)", ErrSlotUnavailable, interval, len(conflicts))
		}

		// 7.3. Сохраняем с зафиксированными ценой и длительностью
		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			ServiceIDs:      append([]int64(nil), req.ServiceIDs...),
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totals.DurationMinutes,
			TotalPriceCents: totals.PriceCents,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		}

		created, err = uc.store.InsertIfNoConflict(txCtx, appointment)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrConflictDetected):
				return fmt.Errorf("%w: %v", ErrConflictDetected, err)
			case errors.Is(err, appointmentRepo.ErrDuplicateClientBooking):
				return fmt.Errorf("%w: %v", ErrDuplicateClientBooking, err)
			}
			return fmt.Errorf("%w: failed to insert appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.translateTxError(err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, %s on %s, duration=%d, price=%d",
		created.ID, interval, dateStr, created.DurationMinutes, created.TotalPriceCents)

	return &Response{
		ID:              created.ID,
		ClientID:        created.ClientID,
		ServiceIDs:      created.ServiceIDs,
		Date:            created.Date,
		StartTime:       created.StartTime,
		EndTime:         interval.EndTime(),
		DurationMinutes: created.DurationMinutes,
		TotalPriceCents: created.TotalPriceCents,
		Status:          string(created.Status),
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// translateTxError приводит ошибки транзакции к ошибкам use case
func (uc *UseCase) translateTxError(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateClientBooking),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrConflictDetected):
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateAppointment: concurrent transaction won: %v", err)
		return fmt.Errorf("%w: %v", ErrConflictDetected, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateAppointment: %v", err)
		return err
	}

	uc.logger.Error("CreateAppointment: transaction failed: %v", err)
	return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
}

func (uc *UseCase) observe(err error) {
	if uc.outcomes == nil {
		return
	}

	outcome := metrics.OutcomeError
	switch {
	case err == nil:
		outcome = metrics.OutcomeCreated
	case errors.Is(err, ErrInvalidInput):
		outcome = metrics.OutcomeInvalidInput
	case errors.Is(err, ErrClientNotFound):
		outcome = metrics.OutcomeClientNotFound
	case errors.Is(err, ErrServiceNotFound):
		outcome = metrics.OutcomeServiceNotFound
	case errors.Is(err, ErrDuplicateClientBooking):
		outcome = metrics.OutcomeDuplicate
	case errors.Is(err, ErrSlotUnavailable):
		outcome = metrics.OutcomeSlotUnavailable
	case errors.Is(err, ErrConflictDetected):
		outcome = metrics.OutcomeConflict
	}

	uc.outcomes.ObserveAppointmentOutcome(outcome)
}
