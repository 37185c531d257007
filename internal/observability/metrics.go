package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpsTotal counts store operations by collection and operation.
	StoreOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_store_ops_total",
		Help: "Total number of store operations by collection and operation",
	}, []string{"collection", "op"})

	// VotesCastTotal counts vote casts by outcome (added, removed,
	// switched, none).
	VotesCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_votes_cast_total",
		Help: "Total number of vote casts by outcome",
	}, []string{"outcome"})

	// CollectionReseedsTotal counts collections re-seeded after a decode
	// failure.
	CollectionReseedsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_collection_reseeds_total",
		Help: "Total number of collections re-seeded from defaults after corrupt data",
	}, []string{"collection"})

	// SessionNotificationsTotal counts session-changed notifications
	// delivered to observers.
	SessionNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agora_session_notifications_total",
		Help: "Total number of session change notifications delivered",
	})
)
