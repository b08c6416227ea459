// Package metrics provides Prometheus instrumentation for goasync components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goasync components.
type Registry struct {
	// Executor Metrics
	TasksSpawned   *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksAborted   *prometheus.CounterVec
	TaskPolls      *prometheus.CounterVec
	TaskWakes      *prometheus.CounterVec
	QueueDepth     *prometheus.GaugeVec
	TasksLive      *prometheus.GaugeVec

	// Timer Metrics
	DelaysArmed     *prometheus.CounterVec
	DelaysFired     *prometheus.CounterVec
	DelaysImmediate *prometheus.CounterVec

	// KV Store Metrics
	KVRequests        *prometheus.CounterVec
	KVRequestErrors   *prometheus.CounterVec
	KVRequestDuration *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by goasync components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Executor Metrics
		TasksSpawned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_spawned_total",
				Help:      "Total number of tasks spawned",
			},
			[]string{"executor_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that resolved",
			},
			[]string{"executor_name"},
		),

		TasksAborted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_aborted_total",
				Help:      "Total number of tasks dropped after a panic during poll",
			},
			[]string{"executor_name"},
		),

		TaskPolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "polls_total",
				Help:      "Total number of poll calls driven by the executor",
			},
			[]string{"executor_name"},
		),

		TaskWakes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "wakes_total",
				Help:      "Total number of wake notifications received",
			},
			[]string{"executor_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "queue_depth",
				Help:      "Number of tasks currently in the ready queue",
			},
			[]string{"executor_name"},
		),

		TasksLive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "executor",
				Name:      "tasks_live",
				Help:      "Number of spawned tasks that have not yet resolved",
			},
			[]string{"executor_name"},
		),

		// Timer Metrics
		DelaysArmed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timer",
				Name:      "delays_armed_total",
				Help:      "Total number of delays that spawned a timing goroutine",
			},
			[]string{"source"},
		),

		DelaysFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timer",
				Name:      "delays_fired_total",
				Help:      "Total number of timing goroutines that invoked their waker",
			},
			[]string{"source"},
		),

		DelaysImmediate: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "timer",
				Name:      "delays_immediate_total",
				Help:      "Total number of delays that resolved on first poll without arming",
			},
			[]string{"source"},
		),

		// KV Store Metrics
		KVRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "kvstore",
				Name:      "requests_total",
				Help:      "Total number of key-value requests issued",
			},
			[]string{"client_name", "command"},
		),

		KVRequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "kvstore",
				Name:      "request_errors_total",
				Help:      "Total number of key-value requests that resolved with an error",
			},
			[]string{"client_name", "command"},
		),

		KVRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goasync",
				Subsystem: "kvstore",
				Name:      "request_duration_seconds",
				Help:      "Time from request issue to resolution",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"client_name", "command"},
		),
	}
}
