package adminapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for admin API calls. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "genie_admin_api_requests_total",
			Help: "Admin API requests by operation and HTTP status code (0 for transport failures)",
		}, []string{"operation", "code"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "genie_admin_api_request_duration_seconds",
			Help:    "Admin API request latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
