// Package metrics exposes Prometheus collectors for quizzes and streams.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

const namespace = "learning_hub"

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	quizStarted   *prometheus.CounterVec
	quizAnswers   *prometheus.CounterVec
	quizFinished  *prometheus.CounterVec
	quizAbandoned *prometheus.CounterVec
	quizScore     *prometheus.HistogramVec
	frames        prometheus.Counter
	streams       *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quizStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_sessions_started_total",
			Help:      "Quiz sessions started, by level.",
		}, []string{"level"}),
		quizAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_answers_total",
			Help:      "Answers recorded, by level and result.",
		}, []string{"level", "result"}),
		quizFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_sessions_finished_total",
			Help:      "Quiz sessions finished, by level and feedback tier.",
		}, []string{"level", "tier"}),
		quizAbandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_sessions_abandoned_total",
			Help:      "Quiz sessions quit before finishing, by level.",
		}, []string{"level"}),
		quizScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quiz_score_percentage",
			Help:      "Final quiz percentage.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}, []string{"level"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "particle_frames_total",
			Help:      "Particle frames rendered for stream clients.",
		}),
		streams: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected WebSocket clients, by stream.",
		}, []string{"stream"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.quizStarted,
		m.quizAnswers,
		m.quizFinished,
		m.quizAbandoned,
		m.quizScore,
		m.frames,
		m.streams,
	)

	return m
}

// RegisterSessionGauge exposes the size of a session registry.
func (m *Metrics) RegisterSessionGauge(registry string, size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "quiz_sessions_active",
		Help:        "Quiz engines held in memory.",
		ConstLabels: prometheus.Labels{"registry": registry},
	}, func() float64 { return float64(size()) }))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) QuizStarted(level entities.Level, _ int) {
	m.quizStarted.WithLabelValues(string(level)).Inc()
}

func (m *Metrics) AnswerRecorded(level entities.Level, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.quizAnswers.WithLabelValues(string(level), result).Inc()
}

func (m *Metrics) QuizFinished(r entities.QuizResults) {
	m.quizFinished.WithLabelValues(string(r.Level), string(r.Tier)).Inc()
	m.quizScore.WithLabelValues(string(r.Level)).Observe(float64(r.Percentage))
}

func (m *Metrics) QuizAbandoned(level entities.Level) {
	m.quizAbandoned.WithLabelValues(string(level)).Inc()
}

// FrameSent counts a streamed particle frame.
func (m *Metrics) FrameSent() {
	m.frames.Inc()
}

// StreamOpened tracks a connected WebSocket client and returns the matching close func.
func (m *Metrics) StreamOpened(stream string) func() {
	g := m.streams.WithLabelValues(stream)
	g.Inc()
	return g.Dec
}
