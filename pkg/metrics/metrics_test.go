package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("shop-booking")

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 20*time.Millisecond)
	m.ObserveDBQuery("insert", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	m.IncBookingsCreated("created")
	m.IncBookingsCreated("conflict")
	m.IncBookingsCreated("conflict")
	m.SetDBConnections(5, 2, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("insert")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("conflict")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("in_use")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBConnections(1, 0, 1)
		m.ObserveSlotsGenerated(8)
		m.IncBookingsCreated("created")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("shop-booking")
	m.ObserveSlotsGenerated(8)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `available_slots_generated_count{service="shop-booking"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
