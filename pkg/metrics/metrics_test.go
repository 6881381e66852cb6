package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.IncReservationsCreated()
	m.IncReservationsCreated()
	m.IncStatusTransition("approved")
	m.IncNotification("customer_confirmation", ResultSent)
	m.IncNotification("customer_confirmation", ResultFailed)
	m.AddCleanupDeleted(3)
	m.AddRemindersScheduled(2)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/reservations", http.StatusCreated, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("customer_confirmation", ResultFailed)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cleanupDeleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.remindersScheduled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/reservations", "201")))
}
