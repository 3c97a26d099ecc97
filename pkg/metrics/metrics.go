package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Channel metrics
	ChannelsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventchannel_channels_total",
			Help: "Total number of registered channels",
		},
	)

	EventsEnqueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_events_enqueued_total",
			Help: "Total number of events pushed by producers",
		},
		[]string{"channel"},
	)

	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventchannel_queue_depth",
			Help: "Events buffered in memory awaiting delivery",
		},
		[]string{"channel"},
	)

	ConsumersAttached = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventchannel_consumers_attached",
			Help: "Connected consumer proxies per channel",
		},
		[]string{"channel"},
	)

	SuppliersAttached = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventchannel_suppliers_attached",
			Help: "Connected supplier proxies per channel",
		},
		[]string{"channel"},
	)

	// Delivery metrics
	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_deliveries_total",
			Help: "Total number of delivery outcomes by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	PushDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventchannel_consumer_push_duration_seconds",
			Help:    "Time taken by a single consumer push in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)

	PushTimeouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_consumer_push_timeouts_total",
			Help: "Consumer pushes abandoned after the maximum push wait",
		},
		[]string{"channel"},
	)

	StalePeersPruned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_stale_peers_pruned_total",
			Help: "Proxy connections destroyed because the remote peer was unreachable",
		},
		[]string{"channel", "kind"},
	)

	// Durable store metrics
	EventsReset = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_events_reset_total",
			Help: "Failed events put back into retry by administrative reset",
		},
		[]string{"channel"},
	)

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_store_errors_total",
			Help: "Durable store operations that returned an error",
		},
		[]string{"channel", "operation"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventchannel_api_requests_total",
			Help: "Total number of API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventchannel_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(ChannelsTotal)
	prometheus.MustRegister(EventsEnqueued)
	prometheus.MustRegister(QueueDepth)
	prometheus.MustRegister(ConsumersAttached)
	prometheus.MustRegister(SuppliersAttached)
	prometheus.MustRegister(DeliveriesTotal)
	prometheus.MustRegister(PushDuration)
	prometheus.MustRegister(PushTimeouts)
	prometheus.MustRegister(StalePeersPruned)
	prometheus.MustRegister(EventsReset)
	prometheus.MustRegister(StoreErrors)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures the duration of an operation
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time on a histogram
func (t *Timer) ObserveDuration(h prometheus.Observer) {
	h.Observe(t.Duration().Seconds())
}

// ObserveDurationVec records the elapsed time on a histogram vector
func (t *Timer) ObserveDurationVec(h *prometheus.HistogramVec, labels ...string) {
	h.WithLabelValues(labels...).Observe(t.Duration().Seconds())
}
