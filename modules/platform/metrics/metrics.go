package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)

// ErrEmpty can be wrapped by callers to record an empty-result outcome
var ErrEmpty = errors.New("empty result")

// Recorder counts facade requests and their latency per feature and operation.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the facade collectors on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parttrack",
			Subsystem: "facade",
			Name:      "requests_total",
			Help:      "Facade requests by feature, operation and outcome.",
		}, []string{"feature", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parttrack",
			Subsystem: "facade",
			Name:      "request_duration_seconds",
			Help:      "Facade request latency including assembly.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"feature", "operation"}),
	}
	if reg != nil {
		reg.MustRegister(r.requests, r.duration)
	}
	return r
}

// Observe records one completed request started at start
func (r *Recorder) Observe(feature, operation string, start time.Time, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	switch {
	case errors.Is(err, ErrEmpty):
		outcome = OutcomeEmpty
	case err != nil:
		outcome = OutcomeError
	}
	r.requests.WithLabelValues(feature, operation, outcome).Inc()
	r.duration.WithLabelValues(feature, operation).Observe(time.Since(start).Seconds())
}
