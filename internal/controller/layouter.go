package controller

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/depgraph-layout/internal/metrics"
	"github.com/suxatcode/depgraph-layout/layout"
)

var ErrInvalidInterval = errors.New("tick interval must be positive")

// Layouter is the control surface of a running graph embedding: it advances
// the simulation, exposes the positions and lets callers tune the physics
// parameters between ticks.
//
//go:generate mockgen -destination layouter_mock.go -package controller . Layouter
type Layouter interface {
	// Tick advances the simulation by one step and returns the largest
	// distance a node moved.
	Tick(context.Context) float64
	// View returns a copy of the current positions.
	View(context.Context) layout.View
	Parameters(context.Context) layout.Parameters
	// SetParameters validates and replaces all parameters, they take effect
	// on the next tick.
	SetParameters(context.Context, layout.Parameters) error
	// SetParameter validates and replaces a single parameter.
	SetParameter(context.Context, layout.Parameter, float64) error
}

// implements Layouter
type ForceSimulationLayouter struct {
	simulation *layout.ForceSimulation
	metrics    *metrics.Registry
}

// NewForceSimulationLayouter wraps fs, reporting into reg. A nil reg uses
// metrics.DefaultRegistry().
func NewForceSimulationLayouter(fs *layout.ForceSimulation, reg *metrics.Registry) *ForceSimulationLayouter {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	l := &ForceSimulationLayouter{simulation: fs, metrics: reg}
	g := fs.Graph()
	reg.SetGraphSize(len(g.Nodes), len(g.Edges))
	l.reportParameters(fs.Parameters().Get())
	return l
}

func (l *ForceSimulationLayouter) Tick(ctx context.Context) float64 {
	start := time.Now()
	moved := l.simulation.Tick()
	l.metrics.RecordTick(time.Since(start), moved)
	return moved
}

func (l *ForceSimulationLayouter) View(ctx context.Context) layout.View {
	return l.simulation.View()
}

func (l *ForceSimulationLayouter) Parameters(ctx context.Context) layout.Parameters {
	return l.simulation.Parameters().Get()
}

func (l *ForceSimulationLayouter) SetParameters(ctx context.Context, params layout.Parameters) error {
	if err := ValidateParameters(params); err != nil {
		return err
	}
	l.simulation.Parameters().Set(params)
	l.reportParameters(params)
	log.Ctx(ctx).Info().Msgf("parameters set to %+v", params)
	return nil
}

func (l *ForceSimulationLayouter) SetParameter(ctx context.Context, name layout.Parameter, value float64) error {
	if err := ValidateParameter(name, value); err != nil {
		return err
	}
	if err := l.simulation.Parameters().SetValue(name, value); err != nil {
		return err
	}
	l.metrics.SetParameter(string(name), value)
	log.Ctx(ctx).Info().Msgf("parameter '%s' set to %v", name, value)
	return nil
}

func (l *ForceSimulationLayouter) reportParameters(params layout.Parameters) {
	for _, name := range layout.AllParameters {
		value, _ := params.Value(name)
		l.metrics.SetParameter(string(name), value)
	}
}

// Run ticks the simulation once per interval until ctx is done. A tick that
// takes longer than interval delays the following ones, ticks never overlap.
func (l *ForceSimulationLayouter) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "%v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger := log.Ctx(ctx)
	logger.Info().Msgf("periodic layout started: interval %v", interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msgf("periodic layout stopped after %d ticks", l.simulation.Ticks())
			return nil
		case <-ticker.C:
			moved := l.Tick(ctx)
			logger.Trace().Msgf("tick %d: max displacement %v", l.simulation.Ticks(), moved)
		}
	}
}
