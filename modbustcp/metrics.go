package modbustcp

import (
	"sync/atomic"
)

// ClientMetrics contains atomic metrics for a client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ClientMetrics struct {
	// ReadCount indicates the number of caller-visible read operations,
	// counted before chunking.
	ReadCount atomic.Uint64
	// WriteCount indicates the number of caller-visible write operations.
	WriteCount atomic.Uint64
	// ChunkedReadCount indicates the number of reads split across multiple
	// wire requests.
	ChunkedReadCount atomic.Uint64

	// RequestCount indicates the number of wire requests dispatched.
	RequestCount atomic.Uint64
	// RequestErrCount indicates the number of wire requests that failed.
	RequestErrCount atomic.Uint64
	// RequestInflightCount indicates the number of requests currently
	// dispatched to the transport. It never exceeds 1 by construction.
	RequestInflightCount atomic.Int64
}

func (m *ClientMetrics) incReadCount() {
	m.ReadCount.Add(1)
}

func (m *ClientMetrics) incWriteCount() {
	m.WriteCount.Add(1)
}

func (m *ClientMetrics) incChunkedReadCount() {
	m.ChunkedReadCount.Add(1)
}

func (m *ClientMetrics) incRequestCount() {
	m.RequestCount.Add(1)
}

func (m *ClientMetrics) incRequestErrCount() {
	m.RequestErrCount.Add(1)
}

func (m *ClientMetrics) incRequestInflightCount() {
	m.RequestInflightCount.Add(1)
}

func (m *ClientMetrics) decRequestInflightCount() {
	m.RequestInflightCount.Add(-1)
}
