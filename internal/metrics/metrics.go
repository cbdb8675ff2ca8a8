// Package metrics exports automaton generation statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voxel-ca/internal/automaton"
)

const namespace = "voxelca"

// Collector records one sample per generation. It implements
// automaton.Observer.
type Collector struct {
	reg prometheus.Gatherer

	generations prometheus.Counter
	changed     prometheus.Counter
	alive       prometheus.Gauge
	lastChanged prometheus.Gauge
	step        prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// uses a fresh private registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		reg: reg,
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations advanced.",
		}),
		changed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_changed_total",
			Help:      "Cells whose alive state flipped, summed over generations.",
		}),
		alive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells_alive",
			Help:      "Alive cells after the latest generation.",
		}),
		lastChanged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells_changed_last",
			Help:      "Cells that flipped in the latest generation.",
		}),
		step: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one generation including delta tracking.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	reg.MustRegister(c.generations, c.changed, c.alive, c.lastChanged, c.step)
	return c
}

// ObserveAdvance records the stats of one generation.
func (c *Collector) ObserveAdvance(s automaton.AdvanceStats) {
	c.generations.Inc()
	c.changed.Add(float64(s.Changed))
	c.alive.Set(float64(s.Alive))
	c.lastChanged.Set(float64(s.Changed))
	c.step.Observe(s.Duration.Seconds())
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
