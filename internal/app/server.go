package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/depgraph-layout/internal/controller"
	"github.com/suxatcode/depgraph-layout/internal/ingest"
	"github.com/suxatcode/depgraph-layout/internal/metrics"
	"github.com/suxatcode/depgraph-layout/layout"
	"github.com/suxatcode/depgraph-layout/middleware"
)

func loadGraph(conf Config) (*layout.Graph, error) {
	records, err := ingest.Load(conf.Source())
	if err != nil {
		return nil, err
	}
	return layout.NewGraph(records)
}

// BuildSimulation loads the graph described by conf and sets up a simulation
// with the configured parameters. With conf.AllowEmptyGraph a graph that
// cannot be loaded is replaced by an empty one.
func BuildSimulation(conf Config) (*layout.ForceSimulation, error) {
	params := conf.Parameters()
	if err := controller.ValidateParameters(params); err != nil {
		return nil, err
	}
	fsconf, err := conf.SimulationConfig()
	if err != nil {
		return nil, err
	}
	graph, err := loadGraph(conf)
	if err != nil {
		if !conf.AllowEmptyGraph {
			return nil, err
		}
		log.Error().Msgf("%v: continuing with an empty graph", err)
		graph = layout.EmptyGraph()
	}
	log.Info().Msgf("graph: %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))
	return layout.NewForceSimulation(graph, layout.NewParameterStore(params), fsconf), nil
}

// RunBatch ticks fs conf.Ticks times (or until it settles below conf.Epsilon
// or ctx is done) and returns the final positions.
func RunBatch(ctx context.Context, conf Config, fs *layout.ForceSimulation) (layout.View, layout.Stats) {
	stats := fs.ComputeLayout(ctx, conf.Ticks)
	log.Info().Msgf(
		"graph layout computation finished: stats{iterations: %d, time: %d ms, max displacement: %v}",
		stats.Iterations,
		stats.TotalTime.Milliseconds(),
		stats.MaxDisplacement,
	)
	return fs.View(), stats
}

// Handler serves the control surface of l and the metrics of reg.
func Handler(l controller.Layouter, reg *metrics.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AddHttp)
	r.Mount("/", controller.NewController(l).Routes())
	r.Method(http.MethodGet, "/metrics", reg.Handler())
	return r
}

func NewServer(conf Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      handler,
		ReadTimeout:  conf.HTTPTimeout,
		WriteTimeout: conf.HTTPTimeout,
	}
}

// Serve runs the simulation periodically and serves its control surface
// until ctx is done.
func Serve(ctx context.Context, conf Config) error {
	if conf.TickInterval <= 0 {
		return errors.Wrapf(controller.ErrInvalidInterval, "%v", conf.TickInterval)
	}
	fs, err := BuildSimulation(conf)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()
	l := controller.NewForceSimulationLayouter(fs, reg)
	server := NewServer(conf, Handler(l, reg))

	ctx, cancel := context.WithCancel(log.Logger.WithContext(ctx))
	defer cancel()
	go func() {
		if err := l.Run(ctx, conf.TickInterval); err != nil {
			log.Error().Msgf("periodic layout: %v", err)
		}
	}()

	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("connect to http://0.0.0.0:%s/layout for the current layout", conf.Port)
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return errors.Wrap(err, "ListenAndServe")
	case <-ctx.Done():
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return server.Shutdown(shutdownCtx)
}
