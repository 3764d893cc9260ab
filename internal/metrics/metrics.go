package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names a customer write tracked by Recorder.
type Operation string

const (
	Insert Operation = "insert"
	Update Operation = "update"
	Delete Operation = "delete"
)

type opMetrics struct {
	calls  prometheus.Counter
	errors prometheus.Counter
	timer  prometheus.Histogram
}

// Recorder counts and times customer write operations. Each Recorder owns its
// registry, so tests can build as many as they like.
type Recorder struct {
	registry *prometheus.Registry
	ops      map[Operation]opMetrics
}

// New builds a Recorder with the insert/update/delete collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{registry: reg, ops: make(map[Operation]opMetrics)}
	for _, op := range []Operation{Insert, Update, Delete} {
		name := string(op) + "Customer"
		m := opMetrics{
			calls: prometheus.NewCounter(prometheus.CounterOpts{
				Name: name,
				Help: "Counts " + string(op) + " Customer operations",
			}),
			errors: prometheus.NewCounter(prometheus.CounterOpts{
				Name: name + "Errors",
				Help: "Counts failed " + string(op) + " Customer operations",
			}),
			timer: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    name + "Timer",
				Help:    "Times all " + string(op) + " Customer operations in seconds",
				Buckets: prometheus.DefBuckets,
			}),
		}
		reg.MustRegister(m.calls, m.errors, m.timer)
		r.ops[op] = m
	}
	return r
}

// Start counts a call to op and returns a func that records its duration.
func (r *Recorder) Start(op Operation) func() {
	m := r.ops[op]
	m.calls.Inc()
	timer := prometheus.NewTimer(m.timer)
	return func() { timer.ObserveDuration() }
}

// Failed counts a failed call to op.
func (r *Recorder) Failed(op Operation) {
	r.ops[op].errors.Inc()
}

// Calls exposes the call counter of op.
func (r *Recorder) Calls(op Operation) prometheus.Counter {
	return r.ops[op].calls
}

// Errors exposes the error counter of op.
func (r *Recorder) Errors(op Operation) prometheus.Counter {
	return r.ops[op].errors
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
