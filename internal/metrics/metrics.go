package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Accounts created, local and federated",
		},
	)
	SigninsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signins_total",
			Help: "Sign-in attempts",
		},
		[]string{"result"}, // ok|rejected
	)
	PostsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Posts created",
		},
	)
	CommentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Comments created",
		},
	)
	LikeTogglesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comment_like_toggles_total",
			Help: "Comment like toggles",
		},
	)
	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "audit_queue_depth",
			Help: "Pending audit log writes",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(SignupsTotal)
	prometheus.MustRegister(SigninsTotal)
	prometheus.MustRegister(PostsCreatedTotal)
	prometheus.MustRegister(CommentsCreatedTotal)
	prometheus.MustRegister(LikeTogglesTotal)
	prometheus.MustRegister(AuditQueueDepth)
}
