package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBookingOperation("create", OutcomeSuccess)
		m.IncEquipmentOperation("issue", OutcomeError)
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBCall("query", errors.New("boom"), time.Millisecond)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("court-booking", reg)

	m.IncBookingOperation("create", OutcomeSuccess)
	m.IncBookingOperation("create", OutcomeSuccess)
	m.IncBookingOperation("create", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOperations.WithLabelValues("court-booking", "create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOperations.WithLabelValues("court-booking", "create", OutcomeRejected)))
}
