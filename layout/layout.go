package layout

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/quartercastle/vector"
)

type ForceSimulationConfig struct {
	// Parallelization is the number of goroutines computing the repulsion
	// force. Values <= 1 compute it on the calling goroutine.
	Parallelization int
	// BarnesHut replaces the exact pairwise repulsion by the quadtree
	// approximation, Theta defines its accuracy (smaller is more exact).
	BarnesHut bool
	Theta     float64
	// InitialLayout defines how nodes without a position are placed before
	// the first tick, InitialSpread the extent of that placement.
	InitialLayout InitialLayout
	InitialSpread float64
	RandomFloat   func() float64
	// Epsilon ends ComputeLayout once no node moved further than this during
	// a tick. Zero disables the check.
	Epsilon float64
}

type InitialLayout int

const (
	InitialLayoutUndefined InitialLayout = iota
	// initialize nodes in a circle, evenly spread
	InitialLayoutCircle
	// initialize nodes randomly
	InitialLayoutRandom
)

var DefaultForceSimulationConfig = ForceSimulationConfig{
	Parallelization: runtime.NumCPU(),
	BarnesHut:       false,
	Theta:           0.75,
	InitialLayout:   InitialLayoutRandom,
	InitialSpread:   50000.0,
	Epsilon:         0.0,
}

// ForceSimulation holds all information needed for a force based graph
// embedding procedure. Tick and View may be called from different goroutines.
type ForceSimulation struct {
	conf     ForceSimulationConfig
	graph    *Graph
	params   *ParameterStore
	mu       sync.RWMutex
	state    *tickState
	partials [][]vector.Vector
	qt       *QuadTree
	ticks    int
}

func NewForceSimulation(graph *Graph, params *ParameterStore, conf ForceSimulationConfig) *ForceSimulation {
	if params == nil {
		params = NewParameterStore(DefaultParameters)
	}
	fs := &ForceSimulation{
		graph:  graph,
		params: params,
		state:  newTickState(len(graph.Nodes)),
		qt:     NewQuadTree(&QuadTreeConfig{}, Rect{}),
	}
	fs.ApplyConfig(conf)
	fs.InitializeNodes()
	return fs
}

func (fs *ForceSimulation) ApplyConfig(conf ForceSimulationConfig) {
	if conf.Parallelization < 0 {
		conf.Parallelization = 0
	}
	if conf.Theta == 0.0 {
		conf.Theta = DefaultForceSimulationConfig.Theta
	}
	if conf.InitialLayout == InitialLayoutUndefined {
		conf.InitialLayout = DefaultForceSimulationConfig.InitialLayout
	}
	if conf.InitialSpread == 0.0 {
		conf.InitialSpread = DefaultForceSimulationConfig.InitialSpread
	}
	if conf.RandomFloat == nil {
		conf.RandomFloat = func() float64 { return rand.Float64() }
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.conf = conf
	n := len(fs.graph.Nodes)
	fs.partials = make([][]vector.Vector, conf.Parallelization)
	for w := range fs.partials {
		fs.partials[w] = make([]vector.Vector, n)
		for i := range fs.partials[w] {
			fs.partials[w][i] = vector.Vector{0, 0}
		}
	}
}

func (fsconf ForceSimulationConfig) RandomVectorInside() vector.Vector {
	if fsconf.RandomFloat == nil {
		fsconf.RandomFloat = func() float64 { return rand.Float64() }
	}
	spread := fsconf.InitialSpread
	return vector.Vector{
		-spread + fsconf.RandomFloat()*2*spread,
		-spread + fsconf.RandomFloat()*2*spread,
	}
}

// InitializeNodes assigns positions to all nodes without one, based on
// fs.conf.InitialLayout. Nodes that already have a position keep it.
func (fs *ForceSimulation) InitializeNodes() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	nodes := fs.graph.Nodes
	for i, node := range nodes {
		if len(node.Pos) >= 2 {
			node.Pos = vector.Vector{node.Pos.X(), node.Pos.Y()}
			continue
		}
		switch fs.conf.InitialLayout {
		case InitialLayoutCircle:
			node.Pos = pointOnCircle(i, len(nodes), fs.conf.InitialSpread, vector.Vector{0, 0})
		default:
			node.Pos = fs.conf.RandomVectorInside()
		}
	}
}

// Parameters returns the store the simulation reads its parameters from.
func (fs *ForceSimulation) Parameters() *ParameterStore {
	return fs.params
}

func (fs *ForceSimulation) Graph() *Graph {
	return fs.graph
}

// Tick advances the simulation by one step and returns the largest distance
// a node moved. All forces are computed from the positions at the start of
// the tick and with a single read of the parameters; positions are only
// written afterwards, by the integrator.
func (fs *ForceSimulation) Tick() float64 {
	params := fs.params.Get()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	ts := fs.state
	ts.reset(fs.graph.Nodes, params)
	ts.attractionByEdgesForce(fs.graph.Edges)
	if fs.conf.BarnesHut {
		ts.repulsionBarnesHut(fs.qt, fs.conf.Theta, fs.conf.Parallelization)
	} else {
		ts.repulsionNaive(fs.conf.Parallelization, fs.partials)
	}
	ts.gravityToCenterForce()
	moved := ts.updatePositions(fs.graph.Nodes)
	fs.ticks++
	return moved
}

// Ticks returns the number of ticks run so far.
func (fs *ForceSimulation) Ticks() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.ticks
}

type Stats struct {
	Iterations      int
	TotalTime       time.Duration
	MaxDisplacement float64
}

// ComputeLayout runs ticks until maxTicks is reached (maxTicks <= 0 runs until
// ctx is done), ctx is done or the layout settled below conf.Epsilon.
func (fs *ForceSimulation) ComputeLayout(ctx context.Context, maxTicks int) Stats {
	fs.mu.RLock()
	epsilon := fs.conf.Epsilon
	fs.mu.RUnlock()
	startTime := time.Now()
	stats := Stats{}
simulation:
	for maxTicks <= 0 || stats.Iterations < maxTicks {
		select {
		case <-ctx.Done():
			break simulation
		default:
			// continue looping
		}
		stats.MaxDisplacement = fs.Tick()
		stats.Iterations += 1
		if epsilon > 0 && stats.MaxDisplacement < epsilon {
			break
		}
	}
	stats.TotalTime = time.Since(startTime)
	return stats
}
