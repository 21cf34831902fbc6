package server

import (
	"fmt"
	"io"
	"time"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

// serverMetrics holds the metrics of one server instance.
// Every server has its own set so that several servers can live in one process (tests).
type serverMetrics struct {
	set      *metrics.Set
	requests map[common.Operation]*metrics.Counter
	errors   *metrics.Counter
	duration *metrics.Histogram
}

func newServerMetrics(t transport.IRPCServerTransport) *serverMetrics {
	set := metrics.NewSet()

	m := &serverMetrics{
		set:      set,
		requests: make(map[common.Operation]*metrics.Counter, len(common.Operations)),
		errors:   set.NewCounter("rubin_request_errors_total"),
		duration: set.NewHistogram("rubin_request_duration_seconds"),
	}
	for _, op := range common.Operations {
		m.requests[op] = set.NewCounter(fmt.Sprintf(`rubin_requests_total{op=%q}`, op.String()))
	}

	set.NewGauge("rubin_connections_active", func() float64 {
		return float64(t.ActiveConnections())
	})
	set.NewGauge("rubin_connections_accepted_total", func() float64 {
		return float64(t.AcceptedConnections())
	})

	return m
}

// observe records one handled request. requested is the decoded operation,
// answered the operation of the response (common.OpError on failure).
func (m *serverMetrics) observe(requested, answered common.Operation, start time.Time) {
	if c, ok := m.requests[requested]; ok {
		c.Inc()
	}
	if answered == common.OpError {
		m.errors.Inc()
	}
	m.duration.UpdateDuration(start)
}

// observeRejected records a request that could not be decoded
func (m *serverMetrics) observeRejected(start time.Time) {
	m.errors.Inc()
	m.duration.UpdateDuration(start)
}

// writePrometheus writes the server metrics followed by the process metrics
func (m *serverMetrics) writePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}
