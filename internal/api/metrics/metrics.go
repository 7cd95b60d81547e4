// Package metrics defines and registers the custom Prometheus metrics of the
// job board API. Metrics register themselves with the default registry on
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── RPC metrics ───────────────────────────────────────────────────────────────

// RPCCallsTotal counts JSON-RPC calls.
// Labels:
//   - method: the JSON-RPC method, or "unknown" when it does not resolve
//   - code: "ok" or the returned error code (e.g. "3001", "-32602")
var RPCCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_calls_total",
		Help:      "Total number of JSON-RPC calls by method and result code.",
	},
	[]string{"method", "code"},
)

// RPCDuration measures handler latency per method.
var RPCDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Duration of JSON-RPC method handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// RateLimitedTotal counts calls refused by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of calls refused by the rate limiter.",
	},
	[]string{"method"},
)

// PageSize observes the number of items returned per paginated call.
var PageSize = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "page_items",
		Help:      "Number of items returned by paginated methods.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
	[]string{"method"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// LifecycleTransitionsTotal counts committed lifecycle changes.
// Labels:
//   - resource: "resume" or "vacancy"
//   - action: "create", "update", "publish" or "hide"
var LifecycleTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_transitions_total",
		Help:      "Total number of committed lifecycle changes.",
	},
	[]string{"resource", "action"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of lifecycle audit events by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the events waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
