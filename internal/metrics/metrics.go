// Package metrics defines the prometheus instruments for the match
// engine. Exposed on /metrics by the http adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectedUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "drift_connected_users",
		Help: "Number of currently connected users.",
	})

	WaitingUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "drift_waiting_users",
		Help: "Number of users currently waiting for a partner.",
	})

	MatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drift_matches_total",
		Help: "Total number of pairings established.",
	})

	RelayedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drift_relayed_events_total",
		Help: "Total in-session events relayed, by event name.",
	}, []string{"event"})
)
