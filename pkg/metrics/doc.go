/*
Package metrics provides Prometheus instrumentation for goasync components.

The Registry type exposes counters, gauges and histograms for the executor
(tasks spawned, completed, aborted, polls, wakes, queue depth), the timer
suspension source (delays armed, fired, resolved immediately) and the
kvstore client (requests, errors, latency). All metrics live under the
"goasync" namespace.

Basic usage with the default registry:

	import "github.com/vnykmshr/goasync/pkg/metrics"

	metrics.DefaultRegistry.TasksSpawned.WithLabelValues("main").Inc()

Components accept a metrics.Config so instrumentation can be directed at a
custom registry, typically one per test or per component instance:

	registry := prometheus.NewRegistry()
	cfg := metrics.Config{Enabled: true, Registry: registry}
	exec, err := executor.NewWithConfig(executor.Config{
		MetricsName: "ingest",
		Metrics:     cfg,
	})

Then expose the registry over HTTP with promhttp:

	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

Metric Naming:

All metrics follow the Prometheus naming conventions with the pattern:

	goasync_<subsystem>_<name>

For example:

	goasync_executor_tasks_spawned_total
	goasync_executor_queue_depth
	goasync_timer_delays_armed_total
	goasync_kvstore_request_duration_seconds
*/
package metrics
