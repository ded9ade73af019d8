// Package metrics tracks in-process counters for the sysq commands. Nothing
// here is exported over a network or persisted; the registry exists so the
// binary can report on its own query activity.
package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	queries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sysq",
		Name:      "queries_total",
		Help:      "Total number of process-table queries performed, by operation.",
	}, []string{"operation"})

	queryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sysq",
		Name:      "query_latency_seconds",
		Help:      "Latency of process-table queries in seconds.",
	}, []string{"operation"})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sysq",
		Name:      "build_info",
		Help:      "Build metadata for the running sysq binary.",
	}, []string{"go_version", "vcs_revision", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(queries, queryLatency, buildInfo)
}

// Registry returns the Prometheus registry containing all sysq metrics.
func Registry() *prometheus.Registry {
	return registry
}

// ObserveQuery records one completed process-table query.
func ObserveQuery(operation string, d time.Duration) {
	if operation == "" {
		operation = "unknown"
	}
	queries.WithLabelValues(operation).Inc()
	queryLatency.WithLabelValues(operation).Observe(d.Seconds())
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs_revision": "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
