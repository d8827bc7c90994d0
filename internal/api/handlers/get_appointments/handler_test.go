package get_appointments

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
)

type fakeService struct {
	allActiveCalls int
	rangeStart     time.Time
	rangeEnd       time.Time
	rangeErr       error
}

func (f *fakeService) GetAllActive(_ context.Context) (*models.AppointmentListResponse, error) {
	f.allActiveCalls++
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}, {ID: 2}}}, nil
}

func (f *fakeService) GetInDateRange(_ context.Context, start, end time.Time) (*models.AppointmentListResponse, error) {
	f.rangeStart, f.rangeEnd = start, end
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 3}}}, nil
}

func list(svc AppointmentService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+query, nil))
	return rec
}

func TestHandle_AllActive(t *testing.T) {
	svc := &fakeService{}
	rec := list(svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.allActiveCalls)

	var body models.AppointmentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Appointments, 2)
}

func TestHandle_DateRange(t *testing.T) {
	svc := &fakeService{}
	rec := list(svc, "?startDate=2024-06-01&endDate=2024-06-07")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.allActiveCalls)
	assert.Equal(t, "2024-06-01", svc.rangeStart.Format("2006-01-02"))
	assert.Equal(t, "2024-06-07", svc.rangeEnd.Format("2006-01-02"))
}

func TestHandle_DateRangeErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, list(&fakeService{}, "?startDate=2024-06-01").Code)
	assert.Equal(t, http.StatusBadRequest, list(&fakeService{}, "?endDate=2024-06-01").Code)
	assert.Equal(t, http.StatusBadRequest, list(&fakeService{}, "?startDate=junio&endDate=2024-06-07").Code)

	svc := &fakeService{rangeErr: appointments.ErrInvalidTimeRange}
	assert.Equal(t, http.StatusBadRequest, list(svc, "?startDate=2024-06-07&endDate=2024-06-01").Code)

	svc = &fakeService{rangeErr: appointments.ErrInternal}
	assert.Equal(t, http.StatusInternalServerError, list(svc, "?startDate=2024-06-01&endDate=2024-06-07").Code)
}
