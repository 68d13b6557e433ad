package metrics

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartoffice"

const (
	TransitionBook    = "book"
	TransitionRelease = "release"
	TransitionEdit    = "edit"
	TransitionCreate  = "create"
	TransitionDelete  = "delete"

	OutcomeSuccess   = "success"
	OutcomeConflict  = "conflict"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Recorder counts asset state transitions by kind and outcome. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newRecorder(registry)
}

func newRecorder(registry *prometheus.Registry) *Recorder {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "assets",
		Name:      "transitions_total",
		Help:      "Asset update requests by transition kind and outcome.",
	}, []string{"transition", "outcome"})
	registry.MustRegister(transitions)

	return &Recorder{
		registry:    registry,
		transitions: transitions,
	}
}

func (r *Recorder) ObserveTransition(transition, outcome string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(transition, outcome).Inc()
}

func (r *Recorder) Counter(transition, outcome string) prometheus.Counter {
	return r.transitions.WithLabelValues(transition, outcome)
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/metrics", r.Handler())
}
