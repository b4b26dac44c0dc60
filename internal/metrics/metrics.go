package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QuotesComputed  *prometheus.CounterVec
	NearestBranch   *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	NotificationOps *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		QuotesComputed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_quotes_computed_total",
			Help: "Total number of delivery quote requests handled.",
		}, []string{"status"}),
		NearestBranch: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_nearest_branch_total",
			Help: "Number of times each branch was selected as the nearest.",
		}, []string{"branch"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "delivery_request_duration_seconds",
			Help:    "Duration of handled HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		NotificationOps: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_notifications_total",
			Help: "Total number of outbound notification attempts by channel.",
		}, []string{"channel", "status"}),
	}
}
