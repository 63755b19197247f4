// Package metrics records per-operation counters and latencies for the store
// using a private prometheus registry.
package metrics

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

const namespace = "storeroom"

// Outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeConstraint = "constraint"
	OutcomeNoData     = "no_data"
	OutcomeError      = "error"
)

// Recorder owns the registry and the collectors registered on it. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// OperationStat is one (operation, outcome) counter value.
type OperationStat struct {
	Operation string  `json:"operation"`
	Outcome   string  `json:"outcome"`
	Count     float64 `json:"count"`
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Store operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Store operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.operations, r.duration)
	return r
}

// Observe records one finished operation.
func (r *Recorder) Observe(operation string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, outcome(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Operations returns every operation counter sorted by operation then outcome.
func (r *Recorder) Operations() ([]OperationStat, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var stats []OperationStat
	for _, mf := range families {
		if mf.GetName() != namespace+"_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			stats = append(stats, OperationStat{
				Operation: labelValue(m, "operation"),
				Outcome:   labelValue(m, "outcome"),
				Count:     m.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Operation != stats[j].Operation {
			return stats[i].Operation < stats[j].Operation
		}
		return stats[i].Outcome < stats[j].Outcome
	})
	return stats, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, types.ErrNoData):
		return OutcomeNoData
	case errors.Is(err, types.ErrConstraint), errors.Is(err, types.ErrInvalidFactor):
		return OutcomeConstraint
	default:
		return OutcomeError
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
