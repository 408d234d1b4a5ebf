package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MongoLatency is the duration of Mongo queries issued by the guild
	// config and ticket data access layers.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lobo",
			Subsystem: "dataaccess",
			Name:      "mongo_latency",
			Help:      "Duration of Mongo queries issued by the data access layers",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo queries issued by the
	// guild config and ticket data access layers.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lobo",
			Subsystem: "dataaccess",
			Name:      "mongo_total_requests",
			Help:      "Total number of Mongo queries issued by the data access layers",
		},
		[]string{"dal", "query", "database", "collection"},
	)
)
