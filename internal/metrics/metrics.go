// Package metrics exposes Prometheus counters for the conversation flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Events         *prometheus.CounterVec
	Prompts        *prometheus.CounterVec
	FormsCompleted prometheus.Counter
	DecodeErrors   prometheus.Counter
	SendFailures   prometheus.Counter

	registry *prometheus.Registry
}

// New registers every collector on a private registry, so several instances
// (one per test) never collide.
func New() *Metrics {
	m := &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formbot_events_total",
			Help: "Inbound webhook events by kind.",
		}, []string{"kind"}),
		Prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formbot_prompts_total",
			Help: "Outbound messages by template.",
		}, []string{"template"}),
		FormsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formbot_forms_completed_total",
			Help: "Completion summaries sent.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formbot_state_decode_errors_total",
			Help: "Postback payloads that did not decode to a form state.",
		}),
		SendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formbot_send_failures_total",
			Help: "Send API calls that failed.",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.Events,
		m.Prompts,
		m.FormsCompleted,
		m.DecodeErrors,
		m.SendFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
