// Package telemetry holds the logging and Prometheus plumbing shared by the
// terminal and HTTP front ends.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/develordle/internal/game"
)

const namespace = "develordle"

// Metrics collects game counters on a private registry. It satisfies
// engine.Observer so every engine can report into it.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted  prometheus.Counter
	sessionsFinished *prometheus.CounterVec
	guesses          *prometheus.CounterVec
	attempts         prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of game sessions started",
		}),
		sessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Total number of game sessions that reached a terminal state",
		}, []string{"status"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Total number of scored guesses",
		}, []string{"result"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempts_per_session",
			Help:      "Rows used by finished sessions",
			Buckets:   prometheus.LinearBuckets(1, 1, game.MaxAttempts),
		}),
	}
	m.registry.MustRegister(m.sessionsStarted, m.sessionsFinished, m.guesses, m.attempts)
	return m
}

// RegisterActiveGames exposes a gauge computed by fn at scrape time.
func (m *Metrics) RegisterActiveGames(fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_games",
		Help:      "Games currently hosted in memory",
	}, fn))
}

func (m *Metrics) SessionStarted(uint64) { m.sessionsStarted.Inc() }

func (m *Metrics) GuessScored(o game.Outcome) {
	result := "miss"
	if o.Status == game.Won {
		result = "hit"
	}
	m.guesses.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionFinished(o game.Outcome) {
	m.sessionsFinished.WithLabelValues(o.Status.String()).Inc()
	m.attempts.Observe(float64(o.Row + 1))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
