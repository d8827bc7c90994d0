package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue ищет значение счетчика по имени и набору меток
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				if metric.GetCounter() != nil {
					return metric.GetCounter().GetValue()
				}
				return metric.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok && want == pair.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("barber-booking", reg)

	m.ObserveHTTPRequest("POST", "/api/v1/appointments", 201, 20*time.Millisecond)
	m.ObserveDBQuery("insert", nil, time.Millisecond)
	m.ObserveDBQuery("select", sql.ErrNoRows, time.Millisecond)
	m.ObserveDBQuery("select", errors.New("boom"), time.Millisecond)
	m.SetDBPoolStats(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2})
	m.ObserveAppointmentOutcome(OutcomeCreated)
	m.ObserveAppointmentOutcome(OutcomeSlotUnavailable)
	m.ObserveAppointmentOutcome(OutcomeSlotUnavailable)

	assert.Equal(t, float64(1), counterValue(t, reg, "barber_booking_http_requests_total",
		map[string]string{"method": "POST", "route": "/api/v1/appointments", "status": "201"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "barber_booking_db_queries_total",
		map[string]string{"operation": "select", "status": "ok"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "barber_booking_db_queries_total",
		map[string]string{"operation": "select", "status": "error"}))
	assert.Equal(t, float64(2), counterValue(t, reg, "barber_booking_appointments_create_total",
		map[string]string{"outcome": OutcomeSlotUnavailable, "service": "barber-booking"}))
	assert.Equal(t, float64(3), counterValue(t, reg, "barber_booking_db_connections",
		map[string]string{"state": "open"}))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	m.ObserveDBQuery("select", nil, time.Millisecond)
	m.SetDBPoolStats(sql.DBStats{})
	m.ObserveAppointmentOutcome(OutcomeError)
}
