package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *memory.AppointmentStore) {
	t.Helper()
	store := memory.NewAppointmentStore()
	return NewService(store, memory.NewCatalog(memory.DefaultMenu()...), logger.NewNop()), store
}

func seed(t *testing.T, store *memory.AppointmentStore, clientID int64, date time.Time, start string, duration int) *domain.Appointment {
	t.Helper()
	a, err := store.InsertIfNoConflict(context.Background(), &domain.Appointment{
		ClientID:        clientID,
		ServiceIDs:      []int64{1, 2},
		Date:            date,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		TotalPriceCents: 3000,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)
	return a
}

func TestService_IsTimeSlotAvailable(t *testing.T) {
	svc, store := newService(t)
	seed(t, store, 1, day, "10:00", 45)

	tests := []struct {
		start    string
		duration int
		want     bool
	}{
		{"10:45", 30, true},
		{"09:00", 60, true},
		{"09:59", 1, false},
		{"10:30", 30, false},
		{"09:00", 120, false},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			resp, err := svc.IsTimeSlotAvailable(context.Background(), day, types.TimeString(tt.start), tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Available)
		})
	}

	// Другая дата свободна
	resp, err := svc.IsTimeSlotAvailable(context.Background(), day.AddDate(0, 0, 1), "10:00", 45)
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "10:45", resp.EndTime)

	_, err = svc.IsTimeSlotAvailable(context.Background(), day, "10:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IsTimeSlotAvailable(context.Background(), day, "bad", 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CancelScenario(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	a := seed(t, store, 1, day, "10:00", 45)

	resp, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	byDate, err := svc.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, byDate.Appointments)

	byClient, err := svc.GetByClient(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, byClient.Appointments)

	// История сохраняется
	stored, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}

func TestService_TerminalTransitions(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	cancelled := seed(t, store, 1, day, "10:00", 45)
	_, err := svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	completed := seed(t, store, 2, day, "12:00", 30)
	resp, err := svc.Complete(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	cancel := func(ctx context.Context, id int64) error {
		_, err := svc.Cancel(ctx, id)
		return err
	}
	complete := func(ctx context.Context, id int64) error {
		_, err := svc.Complete(ctx, id)
		return err
	}

	tests := []struct {
		name string
		call func(context.Context, int64) error
		id   int64
		want domain.AppointmentStatus
	}{
		{"re-cancel cancelled", cancel, cancelled.ID, domain.StatusCancelled},
		{"complete cancelled", complete, cancelled.ID, domain.StatusCancelled},
		{"cancel completed", cancel, completed.ID, domain.StatusCompleted},
		{"re-complete completed", complete, completed.ID, domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := store.GetByID(ctx, tt.id)
			require.NoError(t, err)

			err = tt.call(ctx, tt.id)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)

			after, err := store.GetByID(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, after.Status)
			assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
		})
	}
}

func TestService_NotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Cancel(ctx, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.Complete(ctx, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_ConcurrentCancelAndComplete(t *testing.T) {
	svc, store := newService(t)
	a := seed(t, store, 1, day, "10:00", 45)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		errs  []error
		start = make(chan struct{})
		ctx   = context.Background()
	)

	calls := make([]func(context.Context, int64) error, 0, 10)
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			calls = append(calls, func(ctx context.Context, id int64) error {
				_, err := svc.Cancel(ctx, id)
				return err
			})
			continue
		}
		calls = append(calls, func(ctx context.Context, id int64) error {
			_, err := svc.Complete(ctx, id)
			return err
		})
	}

	for _, call := range calls {
		wg.Add(1)
		go func(call func(context.Context, int64) error) {
			defer wg.Done()
			<-start
			err := call(ctx, a.ID)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(call)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrInvalidStateTransition), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

func TestService_Listings(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	seed(t, store, 1, day.AddDate(0, 0, 3), "09:00", 30)
	seed(t, store, 2, day, "14:00", 30)
	seed(t, store, 3, day, "09:30", 30)
	cancelled := seed(t, store, 4, day.AddDate(0, 0, 1), "11:00", 30)
	_, err := svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	all, err := svc.GetAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, all.Appointments, 3)
	assert.Equal(t, "09:30", all.Appointments[0].StartTime)
	assert.Equal(t, "14:00", all.Appointments[1].StartTime)
	assert.Equal(t, "2024-06-04", all.Appointments[2].Date)

	inRange, err := svc.GetInDateRange(ctx, day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, inRange.Appointments, 2)

	single, err := svc.GetInDateRange(ctx, day.AddDate(0, 0, 3), day.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Len(t, single.Appointments, 1)

	_, err = svc.GetInDateRange(ctx, day.AddDate(0, 0, 1), day)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.GetByClient(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetServiceMenu(t *testing.T) {
	svc, _ := newService(t)

	menu, err := svc.GetServiceMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Services, 6)
	assert.Equal(t, "Barba", menu.Services[0].Name)
	assert.Equal(t, 20, menu.Services[0].DurationMinutes)
}
