// Package metrics records slicing runs as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Faultbox/stlslice/pkg/slicer"
)

const namespace = "stlslice"

// Collector implements slicer.Observer and keeps its metrics in a private
// registry so several runs in one process do not collide.
type Collector struct {
	reg *prometheus.Registry

	levels   *prometheus.CounterVec
	attempts prometheus.Histogram
	segments prometheus.Counter
	layers   prometheus.Gauge
	duration prometheus.Gauge
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		levels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_total",
			Help:      "Resolved z levels by final state.",
		}, []string{"state"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_attempts",
			Help:      "Planes probed per z level.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 100},
		}),
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_total",
			Help:      "Distinct cut segments over all levels.",
		}),
		layers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stack_layers",
			Help:      "Layers in the last sliced stack.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last slicing run.",
		}),
	}
	c.reg.MustRegister(c.levels, c.attempts, c.segments, c.layers, c.duration)
	return c
}

// LevelDone records one resolved level.
func (c *Collector) LevelDone(r slicer.LevelReport) {
	c.levels.WithLabelValues(r.State.String()).Inc()
	c.attempts.Observe(float64(r.Attempts))
	c.segments.Add(float64(r.Segments))
}

// RunDone records the totals of a finished run.
func (c *Collector) RunDone(rep *slicer.Report) {
	c.layers.Set(float64(rep.Count(slicer.Accepted)))
	c.duration.Set(rep.Duration.Seconds())
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}
