package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

type fakeUseCase struct {
	got  *createAppointment.Request
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(t *testing.T, uc CreateAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"clientId":7,"serviceIds":[1,2],"date":"2024-06-01","time":"10:00","notes":"sin máquina"}`

func TestHandle_Created(t *testing.T) {
	created := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:              11,
		ClientID:        7,
		ServiceIDs:      []int64{1, 2},
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		TotalPriceCents: 2200000,
		Status:          "confirmed",
		CreatedAt:       created,
		UpdatedAt:       created,
	}}

	rec := doRequest(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.ClientID)
	assert.Equal(t, []int64{1, 2}, uc.got.ServiceIDs)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, "2024-06-01", uc.got.Date.Format("2006-01-02"))
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "sin máquina", *uc.got.Notes)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, "11:00", body.EndTime)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, "2024-05-20T12:00:00Z", body.CreatedAt)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"clientId":`},
		{name: "unknown field", body: `{"clientId":7,"serviceIds":[1],"date":"2024-06-01","time":"10:00","barber":"x"}`},
		{name: "bad date", body: `{"clientId":7,"serviceIds":[1],"date":"01/06/2024","time":"10:00"}`},
		{name: "bad time", body: `{"clientId":7,"serviceIds":[1],"date":"2024-06-01","time":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := doRequest(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: createAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{err: createAppointment.ErrClientNotFound, status: http.StatusNotFound},
		{err: createAppointment.ErrServiceNotFound, status: http.StatusNotFound},
		{err: createAppointment.ErrDuplicateClientBooking, status: http.StatusConflict},
		{err: createAppointment.ErrSlotUnavailable, status: http.StatusConflict},
		{err: createAppointment.ErrConflictDetected, status: http.StatusConflict},
		{err: createAppointment.ErrInternal, status: http.StatusInternalServerError},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &fakeUseCase{err: fmt.Errorf("%w: details", tt.err)}
			rec := doRequest(t, uc, validBody)
			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
