package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "commitgoblin"

var (
	// Registry holds the bot's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	activeSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "focus",
			Name:      "active_sessions",
			Help:      "Current number of running focus and pomodoro sessions.",
		},
		[]string{"kind"},
	)

	focusIntervals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "focus",
			Name:      "intervals_total",
			Help:      "Completed focus intervals by reward outcome.",
		},
		[]string{"kind", "reason"},
	)

	coinsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "economy",
			Name:      "coins_awarded_total",
			Help:      "Coins credited to accounts by source.",
		},
		[]string{"source"},
	)

	persistenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persistence_failures_total",
			Help:      "Document saves that failed after an in-memory mutation.",
		},
		[]string{"operation"},
	)

	commandRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "runs_total",
			Help:      "Slash command executions.",
		},
		[]string{"command", "status"},
	)

	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "duration_seconds",
			Help:      "Duration of slash command executions.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"command"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "messages_total",
			Help:      "Channel messages sent by the notifier.",
		},
		[]string{"success"},
	)

	backups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "uploads_total",
			Help:      "Document snapshot uploads.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		activeSessions,
		focusIntervals,
		coinsAwarded,
		persistenceFailures,
		commandRuns,
		commandDuration,
		notifications,
		backups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func SessionStarted(kind string) {
	activeSessions.WithLabelValues(kind).Inc()
}

func SessionEnded(kind string) {
	activeSessions.WithLabelValues(kind).Dec()
}

// RecordFocusInterval counts one reward evaluation of a finished work interval.
func RecordFocusInterval(kind, reason string) {
	focusIntervals.WithLabelValues(kind, reason).Inc()
}

func AddCoinsAwarded(source string, coins int) {
	if coins <= 0 {
		return
	}
	coinsAwarded.WithLabelValues(source).Add(float64(coins))
}

func RecordPersistenceFailure(operation string) {
	persistenceFailures.WithLabelValues(operation).Inc()
}

// RecordCommand records one slash command execution.
func RecordCommand(command, status string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	commandRuns.WithLabelValues(command, status).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordNotification(success bool) {
	notifications.WithLabelValues(boolLabel(success)).Inc()
}

func RecordBackup(success bool) {
	backups.WithLabelValues(boolLabel(success)).Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
