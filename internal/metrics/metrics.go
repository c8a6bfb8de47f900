package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat_history",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chat_history",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	ChatsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat_history",
			Subsystem: "chats",
			Name:      "created_total",
			Help:      "Chats created, by outcome",
		},
		[]string{"status"},
	)

	TurnsAppendedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat_history",
			Subsystem: "chats",
			Name:      "turns_appended_total",
			Help:      "Turns appended to chat histories, by role",
		},
		[]string{"role"},
	)

	UploadAuthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chat_history",
			Subsystem: "upload",
			Name:      "auth_total",
			Help:      "Upload credentials issued, by provider and outcome",
		},
		[]string{"provider", "status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

func RecordChatCreated(status string) {
	ChatsCreatedTotal.WithLabelValues(status).Inc()
}

func RecordTurnAppended(role string) {
	TurnsAppendedTotal.WithLabelValues(role).Inc()
}

func RecordUploadAuth(provider, status string) {
	UploadAuthTotal.WithLabelValues(provider, status).Inc()
}
