package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordTick(t *testing.T) {
	r := NewRegistry()
	r.RecordTick(10*time.Millisecond, 3.5)
	r.RecordTick(20*time.Millisecond, 1.25)
	assert := assert.New(t)
	assert.Equal(2.0, testutil.ToFloat64(r.TicksTotal))
	assert.Equal(1.25, testutil.ToFloat64(r.MaxDisplacement), "gauge holds the last tick")

	var metric dto.Metric
	require.NoError(t, r.TickDuration.Write(&metric))
	assert.Equal(uint64(2), metric.Histogram.GetSampleCount())
	assert.InDelta(0.03, metric.Histogram.GetSampleSum(), 1e-9)
}

func TestSetGraphSizeAndParameter(t *testing.T) {
	r := NewRegistry()
	r.SetGraphSize(12, 30)
	r.SetParameter("repulsion", 300)
	assert := assert.New(t)
	assert.Equal(12.0, testutil.ToFloat64(r.Nodes))
	assert.Equal(30.0, testutil.ToFloat64(r.Edges))
	assert.Equal(300.0, testutil.ToFloat64(r.ParameterValue.WithLabelValues("repulsion")))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordTick(time.Millisecond, 2)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(200, rec.Code)
	for _, name := range []string{
		"depgraph_layout_ticks_total 1",
		"depgraph_layout_max_displacement 2",
		"depgraph_layout_tick_duration_seconds_count 1",
		"depgraph_layout_nodes 0",
	} {
		assert.True(strings.Contains(string(body), name), "missing %q", name)
	}
}

func TestConcurrentRecordTick(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordTick(time.Microsecond, float64(j))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, testutil.ToFloat64(r.TicksTotal))
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	r.SetParameter("k", 198)
	families, err := r.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	for _, name := range []string{
		"depgraph_layout_ticks_total",
		"depgraph_layout_tick_duration_seconds",
		"depgraph_layout_max_displacement",
		"depgraph_layout_nodes",
		"depgraph_layout_edges",
		"depgraph_layout_parameter",
	} {
		assert.True(t, names[name], "missing %q", name)
	}
	assert.NotSame(t, NewRegistry().GetPrometheusRegistry(), r.GetPrometheusRegistry(), "registries are independent")
}
