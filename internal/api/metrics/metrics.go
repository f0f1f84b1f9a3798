// Package metrics defines the custom Prometheus metrics of the clinic portal.
// HTTP request metrics come from echoprometheus; everything here is domain
// level. All collectors register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "profile_missing", "role_undefined", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - kind: "self" for public sign-up, "staff" for front-desk registration
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of patient accounts created, by registration kind.",
	},
	[]string{"kind"},
)

// VisitsRecordedTotal counts visit notes written by doctors.
var VisitsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visits_recorded_total",
		Help:      "Total number of visits recorded.",
	},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivityQueueDepth tracks pending activities per dispatcher worker.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activities pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures one activity from dequeue to persistence.
// Label:
//   - kind: the activity kind, or "error" on failure
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ActivitiesDroppedTotal counts activities discarded because a worker queue was full.
var ActivitiesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_dropped_total",
		Help:      "Total number of activities dropped because the worker queue was full.",
	},
)
