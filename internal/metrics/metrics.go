// Package metrics exposes search and dataset load counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/companysearch/internal/core"
)

// Collector records search activity. It implements core.Observer.
type Collector struct {
	registry *prometheus.Registry

	searches     *prometheus.CounterVec
	loadFailures *prometheus.CounterVec
	loadSeconds  prometheus.Histogram
	datasetRows  prometheus.Gauge
}

// New creates a Collector on its own registry, with the Go runtime and
// process collectors alongside.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "companysearch_searches_total",
				Help: "Total number of completed searches by result status",
			},
			[]string{"status"},
		),
		loadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "companysearch_load_failures_total",
				Help: "Total number of failed dataset loads by error kind",
			},
			[]string{"kind"},
		),
		loadSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "companysearch_dataset_load_seconds",
				Help:    "Time spent fetching and parsing the dataset",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		datasetRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "companysearch_dataset_rows",
				Help: "Number of records in the most recently loaded dataset",
			},
		),
	}

	c.registry.MustRegister(
		c.searches,
		c.loadFailures,
		c.loadSeconds,
		c.datasetRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create status series so dashboards see zeros before the first search.
	for _, s := range []core.Status{core.StatusNoQuery, core.StatusZeroMatches, core.StatusMatches} {
		c.searches.WithLabelValues(string(s))
	}

	return c
}

// ObserveLoad records one dataset load.
func (c *Collector) ObserveLoad(d time.Duration, rows int, err error) {
	c.loadSeconds.Observe(d.Seconds())
	if err != nil {
		c.loadFailures.WithLabelValues(core.ErrorKind(err)).Inc()
		return
	}
	c.datasetRows.Set(float64(rows))
}

// ObserveSearch records one completed search.
func (c *Collector) ObserveSearch(s core.Status) {
	c.searches.WithLabelValues(string(s)).Inc()
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
