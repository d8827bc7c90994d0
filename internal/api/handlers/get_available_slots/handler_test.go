package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/memory"
	getAvailableSlots "github.com/m04kA/SMC-BarberBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newHandler(t *testing.T, booked ...*domain.Appointment) *Handler {
	t.Helper()

	store := memory.NewAppointmentStore()
	for _, a := range booked {
		_, err := store.InsertIfNoConflict(context.Background(), a)
		require.NoError(t, err)
	}

	log := logger.NewNop()
	uc := getAvailableSlots.NewUseCase(store, memory.NewCatalog(memory.DefaultMenu()...), domain.DefaultWorkingHours(), log).
		WithTimeProvider(fixedClock{now: time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)})
	return NewHandler(uc, log)
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?"+query, nil))
	return rec
}

func TestHandle_Slots(t *testing.T) {
	date := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	h := newHandler(t, &domain.Appointment{
		ClientID:        1,
		ServiceIDs:      []int64{3},
		Date:            date,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		TotalPriceCents: 1800000,
		Status:          domain.StatusConfirmed,
	})

	rec := get(h, "date=2030-01-07&serviceIds=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-01-07", body.Date)
	assert.Equal(t, 40, body.DurationMinutes)
	assert.Equal(t, int64(1400000), body.TotalPriceCents)
	require.NotEmpty(t, body.Slots)

	starts := make([]string, 0, len(body.Slots))
	for _, s := range body.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Contains(t, starts, "09:00")
	assert.NotContains(t, starts, "09:30")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:30")
	assert.Contains(t, starts, "11:00")
	assert.Equal(t, "18:30", starts[len(starts)-1])
}

func TestHandle_Errors(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{name: "missing services", query: "date=2030-01-07", status: http.StatusBadRequest},
		{name: "bad services", query: "date=2030-01-07&serviceIds=1,a", status: http.StatusBadRequest},
		{name: "missing date", query: "serviceIds=1", status: http.StatusBadRequest},
		{name: "bad date", query: "date=07-01-2030&serviceIds=1", status: http.StatusBadRequest},
		{name: "past date", query: "date=2029-12-31&serviceIds=1", status: http.StatusBadRequest},
		{name: "unknown service", query: "date=2030-01-07&serviceIds=1,99", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(h, tt.query).Code)
		})
	}
}
