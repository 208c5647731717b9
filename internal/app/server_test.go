package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suxatcode/depgraph-layout/internal/controller"
	"github.com/suxatcode/depgraph-layout/internal/ingest"
	"github.com/suxatcode/depgraph-layout/internal/metrics"
	"github.com/suxatcode/depgraph-layout/layout"
)

const testNodes = `[
	{"Name": "bash", "dep": ["readline", "glibc"], "introduced_in": "core"},
	{"Name": "readline", "dep": ["glibc"], "introduced_in": "core"},
	{"Name": "glibc", "dep": [], "introduced_in": "base"}
]`

func testConfig(t *testing.T) Config {
	t.Helper()
	conf, err := GetEnvConfig()
	require.NoError(t, err)
	conf.InputInline = testNodes
	conf.Workers = 2
	conf.Ticks = 20
	return conf
}

func TestGetEnvConfig_defaults(t *testing.T) {
	conf, err := GetEnvConfig()
	assert := assert.New(t)
	assert.NoError(err)
	assert.False(conf.Production)
	assert.Equal("debug", conf.LogLevel)
	assert.Equal(5*time.Second, conf.HTTPTimeout)
	assert.Equal("8080", conf.Port)
	assert.Equal(1000, conf.Ticks)
	assert.Equal(16*time.Millisecond, conf.TickInterval)
	assert.Equal("random", conf.InitialLayout)
	p := conf.Parameters()
	d := layout.DefaultParameters
	assert.Equal(d.Repulsion, p.Repulsion)
	assert.Equal(d.Attraction, p.Attraction)
	assert.Equal(d.Center, p.Center)
	assert.InDelta(d.K, p.K, 1e-9)
	assert.Equal(d.MaxStep, p.MaxStep)
	assert.Equal(d.MaxDiameter, p.MaxDiameter)
	assert.Equal(ingest.Source{File: DefaultInputFile}, conf.Source())
}

func TestGetEnvConfig_fromEnvironment(t *testing.T) {
	t.Setenv("PRODUCTION", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("INPUT_FILE", "nodes.yaml")
	t.Setenv("EXCLUDE", "glibc,gcc-libs")
	t.Setenv("TICKS", "25")
	t.Setenv("TICK_INTERVAL", "100ms")
	t.Setenv("BARNES_HUT", "true")
	t.Setenv("THETA", "0.5")
	t.Setenv("INITIAL_LAYOUT", "circle")
	t.Setenv("REPULSION", "100")
	t.Setenv("MAX_DIAMETER", "500")
	conf, err := GetEnvConfig()
	require.NoError(t, err)
	assert := assert.New(t)
	assert.True(conf.Production)
	assert.Equal("9090", conf.Port)
	assert.Equal(25, conf.Ticks)
	assert.Equal(100*time.Millisecond, conf.TickInterval)
	assert.Equal(100.0, conf.Parameters().Repulsion)
	assert.Equal(500.0, conf.Parameters().MaxDiameter)
	assert.Equal(ingest.Source{File: "nodes.yaml", Exclude: []string{"glibc", "gcc-libs"}}, conf.Source())
	fsconf, err := conf.SimulationConfig()
	assert.NoError(err)
	assert.True(fsconf.BarnesHut)
	assert.Equal(0.5, fsconf.Theta)
	assert.Equal(layout.InitialLayoutCircle, fsconf.InitialLayout)
	assert.Greater(fsconf.Parallelization, 0)
}

func TestGetEnvConfig_invalid(t *testing.T) {
	t.Setenv("TICKS", "many")
	_, err := GetEnvConfig()
	assert.Error(t, err)
}

func TestConfig_SimulationConfig_unknownInitialLayout(t *testing.T) {
	conf := Config{InitialLayout: "spiral"}
	_, err := conf.SimulationConfig()
	assert.ErrorContains(t, err, "spiral")
}

func TestBuildSimulation(t *testing.T) {
	fs, err := BuildSimulation(testConfig(t))
	require.NoError(t, err)
	g := fs.Graph()
	assert := assert.New(t)
	assert.Len(g.Nodes, 3)
	assert.Len(g.Edges, 3)
	for _, node := range g.Nodes {
		assert.LessOrEqual(node.Pos.Magnitude(), 50000*1.5, "initial positions inside the spread")
	}
}

func TestBuildSimulation_exclude(t *testing.T) {
	conf := testConfig(t)
	conf.Exclude = []string{"glibc"}
	fs, err := BuildSimulation(conf)
	require.NoError(t, err)
	assert.Len(t, fs.Graph().Nodes, 3)
	assert.Len(t, fs.Graph().Edges, 1, "only bash -> readline is left")
}

func TestBuildSimulation_errors(t *testing.T) {
	for _, test := range []struct {
		Name        string
		Modify      func(*Config)
		ExpectErr   error
		ExpectEmpty bool
	}{
		{
			Name:      "unresolved dependency",
			Modify:    func(c *Config) { c.InputInline = `[{"Name": "a", "dep": ["missing"]}]` },
			ExpectErr: layout.ErrMalformedInput,
		},
		{
			Name: "unresolved dependency with empty graph allowed",
			Modify: func(c *Config) {
				c.InputInline = `[{"Name": "a", "dep": ["missing"]}]`
				c.AllowEmptyGraph = true
			},
			ExpectEmpty: true,
		},
		{
			Name:      "missing input file",
			Modify:    func(c *Config) { c.InputFile = filepath.Join(t.TempDir(), "missing.json") },
			ExpectErr: os.ErrNotExist,
		},
		{
			Name:      "invalid parameter",
			Modify:    func(c *Config) { c.K = 0 },
			ExpectErr: controller.ErrInvalidParameter,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			conf := testConfig(t)
			test.Modify(&conf)
			fs, err := BuildSimulation(conf)
			assert := assert.New(t)
			if test.ExpectErr != nil {
				assert.True(errors.Is(err, test.ExpectErr), err)
				assert.Nil(fs)
				return
			}
			assert.NoError(err)
			if test.ExpectEmpty {
				assert.Empty(fs.Graph().Nodes)
				assert.Empty(fs.Graph().Edges)
				fs.Tick()
			}
		})
	}
}

func TestRunBatch(t *testing.T) {
	conf := testConfig(t)
	fs, err := BuildSimulation(conf)
	require.NoError(t, err)
	view, stats := RunBatch(context.Background(), conf, fs)
	assert := assert.New(t)
	assert.Equal(conf.Ticks, stats.Iterations)
	assert.Equal(conf.Ticks, view.Tick)
	assert.Len(view.Nodes, 3)
	assert.Equal("bash", view.Nodes[0].Name)
	assert.Equal("core", view.Nodes[0].Group)
	for _, node := range view.Nodes {
		assert.LessOrEqual(node.X*node.X+node.Y*node.Y, (conf.MaxDiameter/2)*(conf.MaxDiameter/2)*(1+1e-9))
	}
}

func TestHandler(t *testing.T) {
	fs, err := BuildSimulation(testConfig(t))
	require.NoError(t, err)
	reg := metrics.NewRegistry()
	l := controller.NewForceSimulationLayouter(fs, reg)
	l.Tick(context.Background())
	s := httptest.NewServer(Handler(l, reg))
	defer s.Close()
	c := s.Client()

	get := func(path string) (int, string) {
		r, err := c.Get(s.URL + path)
		require.NoError(t, err)
		defer r.Body.Close()
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"), "request id is set by the middleware")
		return r.StatusCode, string(data)
	}
	assert := assert.New(t)

	status, body := get("/layout")
	assert.Equal(200, status)
	view := layout.View{}
	assert.NoError(json.Unmarshal([]byte(body), &view))
	assert.Equal(1, view.Tick)
	assert.Len(view.Nodes, 3)

	status, body = get("/parameters")
	assert.Equal(200, status)
	assert.Contains(body, `"max_step":10`)

	status, body = get("/metrics")
	assert.Equal(200, status)
	assert.True(strings.Contains(body, "depgraph_layout_ticks_total 1"), body)
	assert.True(strings.Contains(body, "depgraph_layout_nodes 3"), body)
}

func TestNewServer(t *testing.T) {
	conf := testConfig(t)
	conf.Port = "1234"
	s := NewServer(conf, nil)
	assert := assert.New(t)
	assert.Equal(":1234", s.Addr)
	assert.Equal(conf.HTTPTimeout, s.ReadTimeout)
	assert.Equal(conf.HTTPTimeout, s.WriteTimeout)
}
