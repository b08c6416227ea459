package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goasync/pkg/metrics"
)

func TestRegistryFor(t *testing.T) {
	if got := metrics.RegistryFor(metrics.Config{}); got != nil {
		t.Error("disabled config should resolve to no registry")
	}

	// The default config must reuse the registry whose collectors were
	// registered at init; a second registration would conflict.
	if got := metrics.RegistryFor(metrics.DefaultConfig()); got != metrics.DefaultRegistry {
		t.Error("default config should resolve to DefaultRegistry")
	}
	if got := metrics.RegistryFor(metrics.Config{Enabled: true}); got != metrics.DefaultRegistry {
		t.Error("enabled config without a registerer should resolve to DefaultRegistry")
	}

	reg := prometheus.NewRegistry()
	got := metrics.RegistryFor(metrics.Config{Enabled: true, Registry: reg})
	if got == nil || got == metrics.DefaultRegistry {
		t.Error("custom registerer should resolve to a fresh registry")
	}
}
