package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBookingService/internal/schedule"
)

// AppointmentStore хранилище записей в памяти процесса
// Возвращает те же ошибки, что и репозиторий PostgreSQL, и так же
// атомарно проверяет пересечения и уникальность клиента на дату при вставке
type AppointmentStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Appointment
	now    func() time.Time
}

// NewAppointmentStore создает пустое хранилище
func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		byID: make(map[int64]*domain.Appointment),
		now:  time.Now,
	}
}

func (s *AppointmentStore) InsertIfNoConflict(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Status == domain.StatusConfirmed {
		iv, err := schedule.NewInterval(a.StartTime, a.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: InsertIfNoConflict: %v", appointment.ErrExecQuery, err)
		}

		for _, existing := range s.byID {
			if existing.Status != domain.StatusConfirmed || !sameDate(existing.Date, a.Date) {
				continue
			}
			if existing.ClientID == a.ClientID {
				return nil, fmt.Errorf("%w: client=%d date=%s", appointment.ErrDuplicateClientBooking,
					a.ClientID, a.Date.Format(domain.DateFormat))
			}
			other, err := schedule.NewInterval(existing.StartTime, existing.DurationMinutes)
			if err != nil {
				continue
			}
			if iv.Overlaps(other) {
				return nil, fmt.Errorf("%w: %s overlaps appointment id=%d", appointment.ErrConflictDetected, iv, existing.ID)
			}
		}
	}

	s.nextID++
	now := s.now()

	stored := clone(a)
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID] = stored

	return clone(stored), nil
}

func (s *AppointmentStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return clone(a), nil
}

func (s *AppointmentStore) UpdateStatus(_ context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if a.Status != from {
		return nil, fmt.Errorf("%w: id=%d expected status %s", appointment.ErrStatusMismatch, id, from)
	}

	a.Status = to
	a.UpdatedAt = s.now()
	return clone(a), nil
}

func (s *AppointmentStore) ListByDate(_ context.Context, date time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(func(a *domain.Appointment) bool {
		return a.Status == status && sameDate(a.Date, date)
	}), nil
}

func (s *AppointmentStore) ListByDateRange(_ context.Context, start, end time.Time, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	from, to := dateOnly(start), dateOnly(end)
	return s.filter(func(a *domain.Appointment) bool {
		d := dateOnly(a.Date)
		return a.Status == status && !d.Before(from) && !d.After(to)
	}), nil
}

func (s *AppointmentStore) ListByClient(_ context.Context, clientID int64, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(func(a *domain.Appointment) bool {
		return a.Status == status && a.ClientID == clientID
	}), nil
}

func (s *AppointmentStore) ListByStatus(_ context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(func(a *domain.Appointment) bool {
		return a.Status == status
	}), nil
}

func (s *AppointmentStore) ExistsForClientOnDate(_ context.Context, clientID int64, date time.Time, statuses []domain.AppointmentStatus) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.byID {
		if a.ClientID != clientID || !sameDate(a.Date, date) {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				return true, nil
			}
		}
	}
	return false, nil
}

// filter возвращает копии подходящих записей, отсортированные по (дата, время)
func (s *AppointmentStore) filter(match func(a *domain.Appointment) bool) []*domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.byID {
		if match(a) {
			result = append(result, clone(a))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		di, dj := dateOnly(result[i].Date), dateOnly(result[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime.IsBefore(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})

	return result
}

func clone(a *domain.Appointment) *domain.Appointment {
	c := *a
	c.ServiceIDs = append([]int64(nil), a.ServiceIDs...)
	if a.Notes != nil {
		notes := *a.Notes
		c.Notes = &notes
	}
	return &c
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
