package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kamal-hamza/adir/internal/core/services"
)

// Collector holds the Prometheus metrics adir records. Each collector owns
// its registry so tests and repeated CLI runs never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	// Index metrics
	AssetsIndexed *prometheus.GaugeVec
	FilesSkipped  prometheus.Gauge
	DuplicateIDs  prometheus.Gauge
	BuildDuration prometheus.Gauge
	LastBuildTime prometheus.Gauge
	BuildsTotal   *prometheus.CounterVec

	// Catalog cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// NewCollector creates a collector with the given namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		AssetsIndexed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "assets_indexed",
				Help:      "Assets written by the last index build, per category",
			},
			[]string{"category"},
		),
		FilesSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_skipped",
			Help:      "Unreadable example files skipped by the last build",
		}),
		DuplicateIDs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duplicate_ids",
			Help:      "Assets dropped for a duplicate id in the last build",
		}),
		BuildDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of the last index build",
		}),
		LastBuildTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last index build",
		}),
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Index builds by outcome",
			},
			[]string{"status"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Catalog queries answered from the cache",
			},
			[]string{"key"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Catalog queries that went to the source",
			},
			[]string{"key"},
		),
	}

	c.registry.MustRegister(
		c.AssetsIndexed,
		c.FilesSkipped,
		c.DuplicateIDs,
		c.BuildDuration,
		c.LastBuildTime,
		c.BuildsTotal,
		c.CacheHits,
		c.CacheMisses,
	)

	return c
}

// Registry returns the registry the metrics are registered with
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordBuild stores the outcome of an index build. resp may be nil when err is set.
func (c *Collector) RecordBuild(resp *services.BuildResponse, err error) {
	if err != nil {
		c.BuildsTotal.WithLabelValues("error").Inc()
		return
	}
	c.BuildsTotal.WithLabelValues("success").Inc()

	c.AssetsIndexed.Reset()
	for category, n := range resp.PerCategory {
		c.AssetsIndexed.WithLabelValues(category).Set(float64(n))
	}
	c.FilesSkipped.Set(float64(len(resp.Skipped)))
	c.DuplicateIDs.Set(float64(len(resp.Duplicates)))
	c.BuildDuration.Set(resp.Duration.Seconds())
	c.LastBuildTime.SetToCurrentTime()
}

// CacheHit implements ports.CacheObserver
func (c *Collector) CacheHit(key string) {
	c.CacheHits.WithLabelValues(key).Inc()
}

// CacheMiss implements ports.CacheObserver
func (c *Collector) CacheMiss(key string) {
	c.CacheMisses.WithLabelValues(key).Inc()
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
