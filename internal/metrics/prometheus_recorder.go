// Package metrics exposes workspace engine activity as Prometheus metrics.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// Content load result labels.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
	ResultStale   = "stale"
)

// Ensure PrometheusRecorder implements the interface.
var _ driven.Metrics = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements driven.Metrics using Prometheus counters.
type PrometheusRecorder struct {
	reg          *prom.Registry
	pollTicks    prom.Counter
	fileChanges  prom.Counter
	watchErrors  prom.Counter
	contentLoads *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics.
// A nil registry gets a fresh one with the Go runtime collectors.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
		reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	}

	pr := &PrometheusRecorder{
		reg: reg,
		pollTicks: prom.NewCounter(prom.CounterOpts{
			Namespace: "deckwork",
			Name:      "poll_ticks_total",
			Help:      "Timestamp polls performed by the file change poller",
		}),
		fileChanges: prom.NewCounter(prom.CounterOpts{
			Namespace: "deckwork",
			Name:      "file_changes_total",
			Help:      "External edits detected on watched slide files",
		}),
		watchErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: "deckwork",
			Name:      "watch_errors_total",
			Help:      "Failures reading the timestamp of a watched path",
		}),
		contentLoads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "deckwork",
			Name:      "content_loads_total",
			Help:      "Slide content loads by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.pollTicks, pr.fileChanges, pr.watchErrors, pr.contentLoads)

	return pr
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func (p *PrometheusRecorder) PollTick() {
	p.pollTicks.Inc()
}

func (p *PrometheusRecorder) FileChanged() {
	p.fileChanges.Inc()
}

func (p *PrometheusRecorder) WatchError() {
	p.watchErrors.Inc()
}

func (p *PrometheusRecorder) ContentLoaded() {
	p.contentLoads.WithLabelValues(ResultSuccess).Inc()
}

func (p *PrometheusRecorder) ContentFailed() {
	p.contentLoads.WithLabelValues(ResultFailed).Inc()
}

func (p *PrometheusRecorder) StaleContentDiscarded() {
	p.contentLoads.WithLabelValues(ResultStale).Inc()
}
