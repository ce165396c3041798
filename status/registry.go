// Package status collects sandbox telemetry read by the HUD
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry groups event counters and float gauges
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Inc bumps counter name by one and returns the new total
func (r *Registry) Inc(name string) int64 {
	return r.Counters.Get(name).Add(1)
}

// Count reads counter name
func (r *Registry) Count(name string) int64 {
	return r.Counters.Get(name).Load()
}

// Summary renders counters as "name n" pairs in key order
func (r *Registry) Summary() string {
	var parts []string
	r.Counters.Range(func(key string, c *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s %d", key, c.Load()))
	})
	return strings.Join(parts, "  ")
}
