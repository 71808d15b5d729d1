// Package promlru exports LRU cache statistics as Prometheus metrics.
package promlru

import (
	"github.com/prometheus/client_golang/prometheus"

	lru "github.com/bpowers/strict-lru"
)

// StatsSource is implemented by *lru.Cache for any key and value type.
type StatsSource interface {
	Stats() lru.Stats
}

// Collector is a prometheus.Collector reading a cache's Stats on every
// scrape.
type Collector struct {
	src StatsSource

	entries   *prometheus.Desc
	capacity  *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for src. Every metric carries a
// cache=name label so several caches can share a namespace.
func NewCollector(namespace, name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", metric), help, nil, labels)
	}
	return &Collector{
		src:       src,
		entries:   desc("entries", "Number of entries currently cached"),
		capacity:  desc("capacity", "Maximum number of entries the cache holds"),
		hits:      desc("hits_total", "Total number of lookups that found their key"),
		misses:    desc("misses_total", "Total number of lookups that missed"),
		evictions: desc("evictions_total", "Total number of entries evicted to respect the capacity"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

// Collect implements prometheus.Collector. Counters restart from zero after
// the cache's ResetStats.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Len))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
}
