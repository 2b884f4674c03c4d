package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SyncSuccess = "success"
	SyncInvalid = "invalid"
	SyncFailed  = "failed"
)

var (
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusmock",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by campusmock",
		},
		[]string{"route", "method", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campusmock",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests handled by campusmock",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	syncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusmock",
			Name:      "activity_sync_total",
			Help:      "Activity sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	syncedActivities = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "campusmock",
			Name:      "synced_activities",
			Help:      "Number of activities held in memory",
		},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(requestTotal, requestDuration, syncTotal, syncedActivities)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(route, method, code string, d time.Duration) {
	requestTotal.WithLabelValues(route, method, code).Inc()
	requestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func IncSync(outcome string) {
	syncTotal.WithLabelValues(outcome).Inc()
}

func SetSyncedActivities(n int) {
	syncedActivities.Set(float64(n))
}
