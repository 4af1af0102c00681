// Package iometrics counts written catalogs and optionally pushes the
// counters to a Prometheus Pushgateway.
package iometrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics keeps write counters in a private registry. It is safe for
// concurrent use.
type Metrics struct {
	reg *prometheus.Registry

	rows     *prometheus.CounterVec
	chunks   *prometheus.CounterVec
	warnings *prometheus.CounterVec
	writes   *prometheus.CounterVec
	duration *prometheus.SummaryVec

	pushURL string
	job     string
}

// New creates metrics for the given configuration. An empty push URL
// keeps counting enabled but makes Push a no-op.
func New(cfg config.MetricsConfig) (*Metrics, error) {
	job := cfg.Job
	if job == "" {
		job = config.AppName
	}

	res := &Metrics{
		reg:     prometheus.NewRegistry(),
		pushURL: cfg.PushURL,
		job:     job,
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "instcat_rows_total",
				Help: "Rows processed per catalog type, by outcome (read, written, filtered).",
			},
			[]string{"catalog_type", "outcome"},
		),
		chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "instcat_chunks_total",
				Help: "Chunks received from data sources per catalog type.",
			},
			[]string{"catalog_type"},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "instcat_warnings_total",
				Help: "Non-fatal write warnings per catalog type.",
			},
			[]string{"catalog_type"},
		),
		writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "instcat_writes_total",
				Help: "Catalog writes per catalog type, by status (ok, error).",
			},
			[]string{"catalog_type", "status"},
		),
		duration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "instcat_write_duration_seconds",
				Help:       "Duration of catalog writes.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"catalog_type"},
		),
	}

	collectors := []prometheus.Collector{
		res.rows, res.chunks, res.warnings, res.writes, res.duration,
	}
	for _, c := range collectors {
		if err := res.reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return res, nil
}

// Record adds the outcome of one catalog write.
func (m *Metrics) Record(stats catalog.Stats, dur time.Duration, err error) {
	typ := stats.Type
	m.rows.WithLabelValues(typ, "read").Add(float64(stats.Rows))
	m.rows.WithLabelValues(typ, "written").Add(float64(stats.Written))
	m.rows.WithLabelValues(typ, "filtered").Add(float64(stats.Filtered()))
	m.chunks.WithLabelValues(typ).Add(float64(stats.Chunks))
	m.warnings.WithLabelValues(typ).Add(float64(len(stats.Warnings)))
	m.duration.WithLabelValues(typ).Observe(dur.Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.writes.WithLabelValues(typ, status).Inc()
}

// Enabled reports whether Push sends anything.
func (m *Metrics) Enabled() bool {
	return m.pushURL != ""
}

// Gatherer exposes the registry for inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// Push sends all counters to the Pushgateway, replacing earlier values
// of the same job.
func (m *Metrics) Push() error {
	if !m.Enabled() {
		return nil
	}
	err := push.New(m.pushURL, m.job).Gatherer(m.reg).Push()
	if err != nil {
		return PushError(m.pushURL, err)
	}
	slog.Info("Metrics pushed", "url", m.pushURL, "job", m.job)
	return nil
}
