package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsDispatchedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notification",
			Name:      "messages_dispatched_total",
			Help:      "Total notification send attempts by kind and outcome.",
		},
		[]string{"kind", "template", "outcome"}, // outcome: "delivered", "failed"
	)

	adminBroadcastsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notification",
			Name:      "admin_broadcasts_total",
			Help:      "Total admin fanout broadcasts.",
		},
		[]string{"template"},
	)

	keepAlivePingsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notification",
			Name:      "keepalive_pings_total",
			Help:      "Total keep-alive self-pings by outcome.",
		},
		[]string{"outcome"}, // "ok", "failed"
	)
)
