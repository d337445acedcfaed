// Package metrics records per-stage timings and table shape for a run and
// exports them in the Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wdm0006/edachain/pkg/eda"
)

const namespace = "edachain"

// Timing is one observed stage execution.
type Timing struct {
	Stage    string
	Duration time.Duration
	Err      error
}

// Collector owns a private registry so several runs in one process do not
// share series.
type Collector struct {
	reg      *prometheus.Registry
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	rows     prometheus.Gauge
	cols     prometheus.Gauge
	missing  *prometheus.GaugeVec
	timings  []Timing
}

func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Stages that returned an error.",
		}, []string{"stage"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_rows",
			Help:      "Rows in the final table.",
		}),
		cols: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_columns",
			Help:      "Columns in the final table.",
		}),
		missing: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "column_missing_values",
			Help:      "Missing cells per column in the observed table.",
		}, []string{"column"}),
	}
	c.reg.MustRegister(c.duration, c.failures, c.rows, c.cols, c.missing)
	return c
}

// Observe has the eda.Observer signature.
func (c *Collector) Observe(stage string, d time.Duration, err error) {
	c.duration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		c.failures.WithLabelValues(stage).Inc()
	}
	c.timings = append(c.timings, Timing{Stage: stage, Duration: d, Err: err})
}

// ObserveFrame records the shape and missing counts of f.
func (c *Collector) ObserveFrame(f *eda.Frame) {
	c.rows.Set(float64(f.Rows()))
	c.cols.Set(float64(f.Cols()))
	for _, col := range f.Columns() {
		c.missing.WithLabelValues(col.Name()).Set(float64(eda.NullCount(col)))
	}
}

// Timings returns the observed stages in run order.
func (c *Collector) Timings() []Timing { return append([]Timing(nil), c.timings...) }

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// WriteTextfile writes all series to path for the node exporter textfile
// collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}
