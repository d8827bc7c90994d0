package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

type fakeService struct {
	available bool
	err       error
}

func (f *fakeService) IsTimeSlotAvailable(_ context.Context, date time.Time, start types.TimeString, duration int) (*models.AvailabilityResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{
		Date:            date.Format("2006-01-02"),
		StartTime:       start.String(),
		DurationMinutes: duration,
		Available:       f.available,
	}, nil
}

func check(svc AppointmentService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := check(&fakeService{available: true}, "date=2024-06-01&time=10:45&durationMinutes=30")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Equal(t, "10:45", body.StartTime)
	assert.Equal(t, 30, body.DurationMinutes)
}

func TestHandle_InvalidParams(t *testing.T) {
	for _, q := range []string{
		"time=10:00&durationMinutes=30",
		"date=2024-06-01&durationMinutes=30",
		"date=2024-06-01&time=10:00",
		"date=2024-06-01&time=10:00&durationMinutes=half",
	} {
		assert.Equal(t, http.StatusBadRequest, check(&fakeService{}, q).Code, q)
	}

	rec := check(&fakeService{err: appointments.ErrInvalidInput}, "date=2024-06-01&time=23:30&durationMinutes=60")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = check(&fakeService{err: appointments.ErrInternal}, "date=2024-06-01&time=10:00&durationMinutes=60")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
