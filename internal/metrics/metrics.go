// Package metrics exposes range activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aimrange"

var (
	ShotsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shots_fired_total",
		Help:      "Trigger pulls that passed the fire-rate gate.",
	}, []string{"mode"})

	ShotsHit = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shots_hit_total",
		Help:      "Shots that landed on a target, split by center ring.",
	}, []string{"mode", "center"})

	Reaction = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reaction_seconds",
		Help:      "Time from target activation to hit.",
		Buckets:   []float64{0.15, 0.2, 0.25, 0.3, 0.4, 0.5, 0.75, 1, 2, 5},
	}, []string{"mode"})

	RoundsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rounds_completed_total",
		Help:      "Rounds that reached the end screen.",
	}, []string{"mode"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Connected range sessions.",
	})

	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tick_duration_seconds",
		Help:      "Wall time spent inside one session tick.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 10),
	})

	DroppedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_messages_total",
		Help:      "Outbound messages dropped because a queue was full.",
	}, []string{"kind"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
