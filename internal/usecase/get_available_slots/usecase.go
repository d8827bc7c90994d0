package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/internal/schedule"
)

// UseCase use case для получения свободных слотов на день
type UseCase struct {
	store        AppointmentStore
	catalog      Catalog
	hours        domain.WorkingHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store AppointmentStore,
	catalog Catalog,
	hours domain.WorkingHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		catalog:      catalog,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
// Результат не резервирует время и может устареть к моменту записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableSlots: date=%s, services=%v", dateStr, req.ServiceIDs)

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", dateStr)
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, dateStr)
	}

	// 3. Длительность визита по услугам
	services, missing, err := uc.catalog.Lookup(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to lookup services: %v", err)
		return nil, fmt.Errorf("%w: failed to lookup services: %v", ErrInternal, err)
	}

	totals, notSummed := domain.SumServices(req.ServiceIDs, services)
	if len(missing) > 0 || len(notSummed) > 0 {
		if len(missing) == 0 {
			missing = notSummed
		}
		uc.logger.Warn("GetAvailableSlots: services %v not found", missing)
		return nil, fmt.Errorf("%w: ids=%v", ErrServiceNotFound, missing)
	}

	// 4. Подтвержденные записи дня
	booked, err := uc.store.ListByDate(ctx, req.Date, domain.StatusConfirmed)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	index, err := schedule.NewIndex(booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build index: %v", err)
		return nil, fmt.Errorf("%w: failed to build index: %v", ErrInternal, err)
	}

	// 5. Для текущего дня прошедшее время не предлагаем
	notBefore := 0
	if isSameDay(req.Date, now) {
		notBefore = now.Hour()*60 + now.Minute()
	}

	free, err := schedule.FreeSlots(index, uc.hours, totals.DurationMinutes, notBefore)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(free))
	for i, s := range free {
		slots[i] = Slot{StartTime: s.StartTime, EndTime: s.EndTime}
	}

	uc.logger.Info("GetAvailableSlots: %d free slots on %s for %d min", len(slots), dateStr, totals.DurationMinutes)

	return &Response{
		Date:            req.Date,
		DurationMinutes: totals.DurationMinutes,
		TotalPriceCents: totals.PriceCents,
		Slots:           slots,
	}, nil
}
