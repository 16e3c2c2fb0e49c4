package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records aggregation timings. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	duration        *prometheus.HistogramVec
	leaderboardSize prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fitrank",
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent building statistics, comparisons and leaderboards.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		leaderboardSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fitrank",
			Name:      "leaderboard_participants",
			Help:      "Number of ranked participants per leaderboard.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.duration, m.leaderboardSize)
	}
	return m
}

func (m *Metrics) observe(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeLeaderboardSize(n int) {
	if m == nil {
		return
	}
	m.leaderboardSize.Observe(float64(n))
}
