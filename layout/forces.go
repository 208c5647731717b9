package layout

import (
	"math"
	"sync"

	"github.com/quartercastle/vector"
)

// tickState is the explicit context every force kernel works on: the
// positions at the start of the tick, the displacement accumulated so far and
// the parameters observed for this tick. Kernels only ever write into acc.
type tickState struct {
	pos    []vector.Vector
	acc    []vector.Vector
	params Parameters
}

func newTickState(n int) *tickState {
	ts := &tickState{
		pos: make([]vector.Vector, n),
		acc: make([]vector.Vector, n),
	}
	for i := 0; i < n; i++ {
		ts.pos[i] = vector.Vector{0, 0}
		ts.acc[i] = vector.Vector{0, 0}
	}
	return ts
}

// reset copies the current node positions into the snapshot and zeroes the
// accumulator.
func (ts *tickState) reset(nodes []*Node, params Parameters) {
	ts.params = params
	for i, node := range nodes {
		ts.pos[i][0], ts.pos[i][1] = node.Pos.X(), node.Pos.Y()
		ts.acc[i][0], ts.acc[i][1] = 0, 0
	}
}

func (ts *tickState) attractionByEdgesForce(edges []*Edge) {
	scale := ts.params.Attraction / ts.params.K
	for _, edge := range edges {
		from, to := ts.pos[edge.Source], ts.pos[edge.Target]
		dx, dy := from[0]-to[0], from[1]-to[1]
		if dx == 0 && dy == 0 {
			// self-loop or coincident endpoints
			continue
		}
		// unit(dir) * attraction*|dir|/k == dir * attraction/k
		fx, fy := dx*scale, dy*scale
		ts.acc[edge.Source][0] -= fx
		ts.acc[edge.Source][1] -= fy
		ts.acc[edge.Target][0] += fx
		ts.acc[edge.Target][1] += fy
	}
}

func (ts *tickState) gravityToCenterForce() {
	for i, pos := range ts.pos {
		// -center * pos * |pos|
		vector.In(ts.acc[i]).Sub(pos.Scale(ts.params.Center * pos.Magnitude()))
	}
}

// repulsionNaive sums the repulsion of all unordered node pairs. With
// parallelization > 1 the rows of the pair triangle are distributed over
// workers, each writing into its own partial accumulator; the partials are
// merged in worker order once all workers are done.
func (ts *tickState) repulsionNaive(parallelization int, partials [][]vector.Vector) {
	scale := ts.params.Repulsion * ts.params.K * ts.params.K
	workers := clamp(parallelization, 1, len(ts.pos))
	if workers <= 1 {
		repulsionRows(ts.pos, ts.acc, scale, 0, 1)
		return
	}
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			partial := partials[w]
			for i := range partial {
				partial[i][0], partial[i][1] = 0, 0
			}
			repulsionRows(ts.pos, partial, scale, w, workers)
		}(w)
	}
	wg.Wait()
	for w := 0; w < workers; w++ {
		for i, f := range partials[w] {
			vector.In(ts.acc[i]).Add(f)
		}
	}
}

// repulsionRows handles the pairs (i, j>i) for i = start, start+stride, ...
// Interleaving rows keeps the triangle balanced between workers.
func repulsionRows(pos, acc []vector.Vector, scale float64, start, stride int) {
	for i := start; i < len(pos); i += stride {
		xi, yi := pos[i][0], pos[i][1]
		for j := i + 1; j < len(pos); j++ {
			dx, dy := pos[j][0]-xi, pos[j][1]-yi
			distSq := dx*dx + dy*dy
			if distSq == 0 {
				continue
			}
			// unit(dir) * scale/dist == dir * scale/dist²
			f := scale / distSq
			fx, fy := dx*f, dy*f
			acc[i][0] -= fx
			acc[i][1] -= fy
			acc[j][0] += fx
			acc[j][1] += fy
		}
	}
}

// repulsionBarnesHut approximates repulsionNaive by treating far away quadtree
// cells as a single body. Every node's force is computed independently, so
// nodes are split into contiguous chunks, one per goroutine.
func (ts *tickState) repulsionBarnesHut(qt *QuadTree, theta float64, parallelization int) {
	qt.Build(ts.pos)
	scale := ts.params.Repulsion * ts.params.K * ts.params.K
	calculateForce := func(from, to int) {
		for i := from; i < to; i++ {
			qt.CalculateForce(ts.acc[i], i, ts.pos, theta, scale)
		}
	}
	total := len(ts.pos)
	p := clamp(parallelization, 1, max(total, 1))
	if p <= 1 {
		calculateForce(0, total)
		return
	}
	wg := sync.WaitGroup{}
	wg.Add(p)
	for i := 0; i < p; i++ {
		go func(i int) {
			defer wg.Done()
			calculateForce(i*total/p, (i+1)*total/p)
		}(i)
	}
	wg.Wait()
}

// updatePositions integrates the accumulated displacement into the node
// positions and returns the largest distance a node moved.
func (ts *tickState) updatePositions(nodes []*Node) float64 {
	radius := ts.params.MaxDiameter / 2
	maxMoved := 0.0
	for i, node := range nodes {
		step := ts.acc[i]
		length := step.Magnitude()
		if length > 0 {
			if length > ts.params.MaxStep {
				vector.In(step).Scale(ts.params.MaxStep / length)
			}
			vector.In(node.Pos).Add(step)
		}
		containPosition(node.Pos, radius)
		moved := math.Hypot(node.Pos[0]-ts.pos[i][0], node.Pos[1]-ts.pos[i][1])
		if moved > maxMoved {
			maxMoved = moved
		}
		step[0], step[1] = 0, 0
	}
	return maxMoved
}

// containPosition rescales pos in place onto the circle of the given radius
// around the origin if it lies outside of it.
func containPosition(pos vector.Vector, radius float64) {
	r := pos.Magnitude()
	if r > radius {
		vector.In(pos).Scale(radius / r)
	}
}
