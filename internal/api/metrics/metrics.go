// Package metrics defines and registers all custom Prometheus metrics for
// the portal API. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "denied" (bad credentials) or "error" (store failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts session lookups performed by the auth
// middleware.
// Label:
//   - result: "hit" (session restored) or "miss" (expired/revoked/absent)
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restores attempted by the auth middleware.",
	},
	[]string{"result"},
)

// MutationsTotal counts successful store mutations.
// Labels:
//   - entity: "user", "ad" or "setting"
//   - op: "add", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// UploadsTotal counts asset uploads.
// Labels:
//   - bucket: logical bucket name
//   - result: "success" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of asset uploads, by bucket and result.",
	},
	[]string{"bucket", "result"},
)

// UploadDuration measures upload handling end-to-end, including key
// derivation and storage.
var UploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of asset uploads from request to stored object.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"bucket"},
)
