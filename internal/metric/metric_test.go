package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navmenu/internal/menu"
)

func TestCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounter(reg, "test_events_total", "Test events.", "kind")

	c.Inc("a")
	c.Inc("a")
	c.Add(3, "b")
	c.Add(0, "b")
	c.Add(-1, "b")

	assert.InDelta(t, 2, testutil.ToFloat64(c.vec.WithLabelValues("a")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(c.vec.WithLabelValues("b")), 0)
}

func TestEngineRecorderWithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewEngineRecorder(reg)

	e := menu.NewEngine(menu.WithRecorder(rec))
	e.Load([]*menu.Node{
		{Code: "root", Name: "Root", Children: []*menu.Node{
			{Code: "leaf", Name: "Leaf", Path: "/leaf"},
		}},
	})
	e.SetQuery("leaf")
	e.Toggle("root")
	e.SetQuery("")
	e.SetActivePath("/leaf")

	assert.InDelta(t, 2, testutil.ToFloat64(rec.filters.vec.WithLabelValues("all")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.filters.vec.WithLabelValues("match")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.toggles.vec.WithLabelValues("override")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.reveals.vec.WithLabelValues()), 0)
}

func TestHandlerForRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewEngineRecorder(reg)
	rec.FilterPass("none")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `navmenu_filter_passes_total{result="none"} 1`)
}

func TestCounterNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCounter(reg, "events_total", "Events.").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "navmenu_events_total", families[0].GetName())

	assert.Panics(t, func() { NewCounter(reg, "events_total", "Events.") })
}

func TestRequestCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	rc := NewRequestCounter(reg)

	rc.Observe("GET /api/menu", http.StatusOK)
	rc.Observe("GET /api/menu", http.StatusOK)
	rc.Observe("GET /readyz", http.StatusServiceUnavailable)

	assert.InDelta(t, 2, testutil.ToFloat64(rc.requests.vec.WithLabelValues("GET /api/menu", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rc.requests.vec.WithLabelValues("GET /readyz", "503")), 0)
}
