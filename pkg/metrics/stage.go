package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StageMetrics records per-phase pipeline runs and per-table load volumes.
type StageMetrics struct {
	duration   *prometheus.HistogramVec
	success    *prometheus.CounterVec
	failure    *prometheus.CounterVec
	rowsLoaded *prometheus.CounterVec
}

// NewStageMetrics registers the pipeline metrics on the provided registerer.
func NewStageMetrics(reg prometheus.Registerer) *StageMetrics {
	if reg == nil {
		return &StageMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_phase_duration_seconds",
		Help:    "Duration of pipeline phases in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_phase_success",
		Help: "Successful pipeline phase executions.",
	}, []string{"phase"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_phase_failure",
		Help: "Failed pipeline phase executions.",
	}, []string{"phase"})
	rowsLoaded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_rows_loaded_total",
		Help: "Rows loaded into pipeline tables.",
	}, []string{"table"})
	reg.MustRegister(duration, success, failure, rowsLoaded)
	return &StageMetrics{
		duration:   duration,
		success:    success,
		failure:    failure,
		rowsLoaded: rowsLoaded,
	}
}

// ObserveDuration records the duration for the named phase.
func (s *StageMetrics) ObserveDuration(phase string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(phase)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named phase.
func (s *StageMetrics) IncSuccess(phase string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(normalizeLabel(phase)).Inc()
}

// IncFailure increments the failure counter for the named phase.
func (s *StageMetrics) IncFailure(phase string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(phase)).Inc()
}

// AddRowsLoaded adds the loaded row count for the named table.
func (s *StageMetrics) AddRowsLoaded(table string, rows int64) {
	if s == nil || s.rowsLoaded == nil || rows <= 0 {
		return
	}
	s.rowsLoaded.WithLabelValues(normalizeLabel(table)).Add(float64(rows))
}

func normalizeLabel(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
