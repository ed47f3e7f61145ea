package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	buildDuration prom.Gauge
	info          *prom.GaugeVec
	navEntries    prom.Gauge
	sections      prom.Gauge
	items         prom.Gauge
	extensions    prom.Gauge
	issues        *prom.GaugeVec
	exports       *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the build metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	gauge := func(name, help string) prom.Gauge {
		return prom.NewGauge(prom.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	pr := &PrometheusRecorder{
		registry:      reg,
		buildDuration: gauge("build_duration_seconds", "Duration of the last configuration build"),
		info: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_info",
			Help:      "Profile and version of the last built snapshot",
		}, []string{"profile", "version"}),
		navEntries: gauge("nav_entries", "Navigation bar entries"),
		sections:   gauge("sidebar_sections", "Sidebar sections"),
		items:      gauge("sidebar_items", "Sidebar entries across all sections"),
		extensions: gauge("markdown_extensions", "Markdown extensions applied"),
		issues: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "validation_issues",
			Help:      "Validation issues by severity",
		}, []string{"severity"}),
		exports: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by format and outcome",
		}, []string{"format", "outcome"}),
	}
	reg.MustRegister(pr.buildDuration, pr.info, pr.navEntries, pr.sections, pr.items, pr.extensions, pr.issues, pr.exports)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Set(d.Seconds())
}

func (p *PrometheusRecorder) SetShape(s Shape) {
	p.info.Reset()
	p.info.WithLabelValues(s.Profile, s.Version).Set(1)
	p.navEntries.Set(float64(s.NavEntries))
	p.sections.Set(float64(s.Sections))
	p.items.Set(float64(s.Items))
	p.extensions.Set(float64(s.Extensions))
}

func (p *PrometheusRecorder) SetIssues(severity string, n int) {
	p.issues.WithLabelValues(severity).Set(float64(n))
}

func (p *PrometheusRecorder) IncExport(format string, outcome Outcome) {
	p.exports.WithLabelValues(format, string(outcome)).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
