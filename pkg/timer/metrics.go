package timer

import (
	"sync/atomic"

	"github.com/vnykmshr/goasync/pkg/metrics"
)

// Delays are created by free constructors rather than through a component
// with its own Config, so instrumentation is enabled for the package as a
// whole. Disabled by default.
var registry atomic.Pointer[metrics.Registry]

// EnableMetrics enables metrics collection for all delays in the process.
func EnableMetrics(config metrics.Config) error {
	reg := metrics.RegistryFor(config)
	if reg == nil {
		DisableMetrics()
		return nil
	}
	registry.Store(reg)
	return nil
}

// DisableMetrics disables metrics collection for delays.
func DisableMetrics() {
	registry.Store(nil)
}

// MetricsEnabled returns true if metrics are currently enabled.
func MetricsEnabled() bool {
	return registry.Load() != nil
}
