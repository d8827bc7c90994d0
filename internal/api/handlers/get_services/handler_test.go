package get_services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	log := logger.NewNop()
	svc := appointments.NewService(memory.NewAppointmentStore(), memory.NewCatalog(memory.DefaultMenu()...), log)

	rec := httptest.NewRecorder()
	NewHandler(svc, log).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ServiceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Services, 6)

	assert.Equal(t, "Barba", body.Services[0].Name)
	assert.Equal(t, int64(800000), body.Services[0].PriceCents)
	assert.Equal(t, 20, body.Services[0].DurationMinutes)
	assert.Equal(t, "Perfilado de cejas", body.Services[5].Name)
}
