// Package metrics records per-run extraction metrics and writes them in the
// node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_extractor"

// RunStats summarizes one run.
type RunStats struct {
	Success  bool
	Stage    string // failing stage: "source" | "validate" | "sink"; empty on success
	Duration time.Duration
	Pages    int
	Fields   map[string]bool // field key -> value found
}

type Recorder struct {
	reg *prometheus.Registry

	RunDuration  prometheus.Gauge
	RunPages     prometheus.Gauge
	RunSuccess   prometheus.Gauge
	RunTimestamp prometheus.Gauge
	FieldsFound  prometheus.Gauge
	FieldFound   *prometheus.GaugeVec
	RunFailures  *prometheus.CounterVec
}

// NewRecorder registers the run metrics on a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		RunDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last extraction run",
		}),
		RunPages: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_pages",
			Help:      "Pages read by the last extraction run",
		}),
		RunSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run wrote its output, 0 otherwise",
		}),
		RunTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		FieldsFound: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_fields_found",
			Help:      "Number of non-empty fields in the last record",
		}),
		FieldFound: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_field_found",
				Help:      "1 if the field had a value in the last record",
			},
			[]string{"field"},
		),
		RunFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "run_failures_total",
				Help:      "Failed runs by stage",
			},
			[]string{"stage"},
		),
	}
}

// Observe updates the gauges from one run.
func (r *Recorder) Observe(s RunStats) {
	r.RunDuration.Set(s.Duration.Seconds())
	r.RunPages.Set(float64(s.Pages))
	r.RunTimestamp.SetToCurrentTime()
	if s.Success {
		r.RunSuccess.Set(1)
	} else {
		r.RunSuccess.Set(0)
		r.RunFailures.WithLabelValues(s.Stage).Inc()
	}

	found := 0
	for field, ok := range s.Fields {
		v := 0.0
		if ok {
			v = 1
			found++
		}
		r.FieldFound.WithLabelValues(field).Set(v)
	}
	r.FieldsFound.Set(float64(found))
}

// WriteTextfile writes every metric to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }
