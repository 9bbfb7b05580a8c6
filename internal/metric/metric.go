// Package metric exposes navmenu activity as prometheus counters.
package metric

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "navmenu"

// Counter counts labelled events.
type Counter struct {
	vec *prometheus.CounterVec
}

// NewCounter registers navmenu_<name> on reg. It panics if the name is
// already registered there.
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return &Counter{vec: vec}
}

// Inc adds one for the given label values.
func (c *Counter) Inc(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}

// Add adds n for the given label values; n <= 0 is ignored.
func (c *Counter) Add(n float64, labels ...string) {
	if n <= 0 {
		return
	}
	c.vec.WithLabelValues(labels...).Add(n)
}

// RequestCounter counts HTTP responses by route pattern and status code.
type RequestCounter struct {
	requests *Counter
}

// NewRequestCounter registers navmenu_http_requests_total on reg.
func NewRequestCounter(reg prometheus.Registerer) *RequestCounter {
	return &RequestCounter{
		requests: NewCounter(reg, "http_requests_total",
			"HTTP requests by route and status code.", "route", "code"),
	}
}

// Observe records one response.
func (r *RequestCounter) Observe(route string, code int) {
	r.requests.Inc(route, strconv.Itoa(code))
}

// EngineRecorder counts menu engine activity. It satisfies menu.Recorder
// and is safe to share between engines.
type EngineRecorder struct {
	filters *Counter
	toggles *Counter
	reveals *Counter
}

// NewEngineRecorder registers the engine counters on reg.
func NewEngineRecorder(reg prometheus.Registerer) *EngineRecorder {
	return &EngineRecorder{
		filters: NewCounter(reg, "filter_passes_total",
			"Filter passes by result (all, match, none).", "result"),
		toggles: NewCounter(reg, "toggles_total",
			"Expansion toggles by target (manual, override).", "target"),
		reveals: NewCounter(reg, "revealed_ancestors_total",
			"Ancestors expanded to reveal the active route."),
	}
}

func (r *EngineRecorder) FilterPass(result string) { r.filters.Inc(result) }
func (r *EngineRecorder) Toggle(target string)     { r.toggles.Inc(target) }
func (r *EngineRecorder) Reveal(added int)         { r.reveals.Add(float64(added)) }

// Handler serves everything gathered by g. A failing collector is reported
// in the response instead of failing the whole scrape.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError})
}
