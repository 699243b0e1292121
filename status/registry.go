// Package status holds lock-free session metrics shared by the engine and its observers
// Writers cache metric pointers once; readers take a Snapshot from any goroutine
package status

import "sync/atomic"

// Registry groups integer counters and float gauges by dotted name
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Float]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Float](),
	}
}

// Counter returns the named counter, registering it on first use
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Metric(name)
}

// Gauge returns the named gauge, registering it on first use
func (r *Registry) Gauge(name string) *Float {
	return r.Gauges.Metric(name)
}

// Snapshot copies every metric into a flat map, counters as int64 and gauges as float64
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Counters.Count()+r.Gauges.Count())
	r.Counters.Range(func(name string, c *atomic.Int64) {
		out[name] = c.Load()
	})
	r.Gauges.Range(func(name string, g *Float) {
		out[name] = g.Load()
	})
	return out
}
