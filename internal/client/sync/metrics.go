package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	flushTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_flush_total",
			Help: "The total number of merge writes issued to the remote document",
		},
	)
	flushFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_flush_failed_total",
			Help: "The total number of remote writes that failed and were dropped",
		},
	)
	bootstrapTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_bootstrap_total",
			Help: "The total number of first-time full snapshot pushes",
		},
	)
	pullTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_pull_total",
			Help: "The total number of remote reads on sign-in",
		},
	)
	remoteAppliedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_remote_applied_total",
			Help: "The total number of remote notifications applied to the local store",
		},
	)
	echoSuppressedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_echo_suppressed_total",
			Help: "The total number of remote notifications recognized as own writes",
		},
	)
	tokenRenewedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifetracker_sync_token_renewed_total",
			Help: "The total number of access tokens renewed after the server rejected them",
		},
	)
	pendingWrites = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifetracker_sync_pending_writes",
			Help: "Slice writes waiting for the next flush",
		},
	)
)
