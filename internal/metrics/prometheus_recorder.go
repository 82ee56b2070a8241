package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitedesc"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration *prom.HistogramVec
	resolveResults  *prom.CounterVec
	unknownFields   *prom.GaugeVec
	reloads         *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of descriptor resolution",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"kind"}),
		resolveResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_results_total",
			Help:      "Descriptor resolution outcomes",
		}, []string{"kind", "result"}),
		unknownFields: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "unknown_fields",
			Help:      "Unknown keys reported by the last successful resolution",
		}, []string{"kind"}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Snapshot reloads by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.resolveDuration, pr.resolveResults, pr.unknownFields, pr.reloads)
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(kind string, d time.Duration) {
	if p == nil {
		return
	}
	p.resolveDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncResolveResult(kind string, result ResultLabel) {
	if p == nil {
		return
	}
	p.resolveResults.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) SetUnknownFields(kind string, n int) {
	if p == nil {
		return
	}
	p.unknownFields.WithLabelValues(kind).Set(float64(n))
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}
