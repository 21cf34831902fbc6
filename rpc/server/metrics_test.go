package server

import (
	"bytes"
	"testing"
	"time"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/transport/tcp"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := newServerMetrics(tcp.NewTCPServerTransport())

	m.observe(common.OpSet, common.OpSet, time.Now())
	m.observe(common.OpSet, common.OpSet, time.Now())
	m.observe(common.OpDump, common.OpError, time.Now())
	m.observeRejected(time.Now())

	var buf bytes.Buffer
	m.writePrometheus(&buf)
	out := buf.String()

	assert.Contains(t, out, `rubin_requests_total{op="SET"} 2`)
	assert.Contains(t, out, `rubin_requests_total{op="DUMP"} 1`)
	assert.Contains(t, out, `rubin_requests_total{op="GET"} 0`)
	assert.Contains(t, out, "rubin_request_errors_total 2")
	assert.Contains(t, out, "rubin_connections_active 0")
	assert.Contains(t, out, "rubin_request_duration_seconds_bucket")
}
