// ============================================================================
// jobkitdemo Metrics - Prometheus Monitoring
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Expose a jobkit.Scheduler's Stats for Prometheus scraping.
//
// Unlike a typical Prometheus instrumentation layer, jobkit.Scheduler
// has no hooks to push an event on every submission/completion — its
// public surface is a point-in-time Stats snapshot (GetStats). Collector
// is therefore a pull-based prometheus.Collector: every scrape calls
// GetStats once and emits all five gauges/counters from that single
// snapshot, which also keeps them as mutually consistent with each
// other as GetStats itself guarantees (only Queued is taken under the
// scheduler's lock; the rest are independent atomic reads).
//
// Metric Categories:
//   jobkit_worker_count        - Gauge, configured worker goroutine count
//   jobkit_jobs_queued         - Gauge, tasks currently waiting
//   jobkit_jobs_in_flight      - Gauge, tasks currently executing
//   jobkit_jobs_submitted_total - Counter, tasks ever accepted
//   jobkit_jobs_completed_total - Counter, tasks whose callable returned
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph-gamedev/jobkit"
)

// StatsSource is the subset of *jobkit.Scheduler that Collector scrapes.
// Defined as an interface so Collector can be tested against a fake
// without spinning up a real Scheduler.
type StatsSource interface {
	GetStats() jobkit.Stats
}

// Collector is a prometheus.Collector that scrapes a StatsSource fresh
// on every Collect call.
type Collector struct {
	source StatsSource

	workerCount *prometheus.Desc
	queued      *prometheus.Desc
	inFlight    *prometheus.Desc
	submitted   *prometheus.Desc
	completed   *prometheus.Desc
}

// NewCollector creates a Collector scraping source.
func NewCollector(source StatsSource) *Collector {
	return &Collector{
		source: source,
		workerCount: prometheus.NewDesc(
			"jobkit_worker_count", "Configured worker goroutine count.", nil, nil),
		queued: prometheus.NewDesc(
			"jobkit_jobs_queued", "Current number of tasks waiting in the queue.", nil, nil),
		inFlight: prometheus.NewDesc(
			"jobkit_jobs_in_flight", "Current number of tasks executing.", nil, nil),
		submitted: prometheus.NewDesc(
			"jobkit_jobs_submitted_total", "Total tasks ever accepted.", nil, nil),
		completed: prometheus.NewDesc(
			"jobkit_jobs_completed_total", "Total tasks whose callable returned.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workerCount
	ch <- c.queued
	ch <- c.inFlight
	ch <- c.submitted
	ch <- c.completed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.GetStats()

	ch <- prometheus.MustNewConstMetric(c.workerCount, prometheus.GaugeValue, float64(stats.WorkerCount))
	ch <- prometheus.MustNewConstMetric(c.queued, prometheus.GaugeValue, float64(stats.Queued))
	ch <- prometheus.MustNewConstMetric(c.inFlight, prometheus.GaugeValue, float64(stats.InFlight))
	ch <- prometheus.MustNewConstMetric(c.submitted, prometheus.CounterValue, float64(stats.Submitted))
	ch <- prometheus.MustNewConstMetric(c.completed, prometheus.CounterValue, float64(stats.Completed))
}

// StartServer starts a Prometheus metrics HTTP server on the given port,
// registering collector against a private registry so scheduler metrics
// aren't mixed into prometheus.DefaultRegisterer's process/Go runtime
// metrics.
func StartServer(port int, collector *Collector) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, mux)
}
