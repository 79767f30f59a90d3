package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision counters fed by review events. Registered on the default
// registry so the Prometheus controller picks them up.
var (
	ObjectsApproved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleetdesk",
		Subsystem: "review",
		Name:      "objects_approved_total",
		Help:      "Insured objects approved, by object type.",
	}, []string{"object_type"})

	ObjectsDeclined = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleetdesk",
		Subsystem: "review",
		Name:      "objects_declined_total",
		Help:      "Insured objects declined, by object type.",
	}, []string{"object_type"})

	BulkApproveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fleetdesk",
		Subsystem: "review",
		Name:      "bulk_approve_failures_total",
		Help:      "Per-object failures inside bulk approval batches.",
	})
)
