// adapted from https://github.com/jwhandley/graphyz/blob/main/quadtree.go
package layout

import (
	"math"

	"github.com/quartercastle/vector"
)

type QuadTreeConfig struct {
	CapacityOfEachBlock int
	// MaxDepth stops subdividing, leaves at this depth take any number of
	// bodies. Without it coincident bodies would subdivide forever.
	MaxDepth int
}

var QUADTREE_DEFAULT_CONFIG = QuadTreeConfig{CapacityOfEachBlock: 10, MaxDepth: 32}

// QuadTree partitions the tick snapshot for the Barnes-Hut approximation of
// the repulsion force. Bodies are node indices into the snapshot, every body
// has mass 1.
type QuadTree struct {
	Center    vector.Vector
	TotalMass float64
	Region    Rect
	Bodies    []int
	Children  [4]*QuadTree
	config    *QuadTreeConfig
	depth     int
}

type Rect struct {
	X, Y, Width, Height float64
}

func (r *Rect) Contains(pos vector.Vector) bool {
	contains := pos.X() >= r.X && pos.X() <= r.X+r.Width && pos.Y() >= r.Y && pos.Y() <= r.Y+r.Height
	return contains
}

func (r *Rect) Center() vector.Vector {
	return vector.Vector{r.X + r.Width/2, r.Y + r.Height/2}
}

// boundingSquare returns the smallest square containing all positions.
func boundingSquare(pos []vector.Vector) Rect {
	if len(pos) == 0 {
		return Rect{X: 0, Y: 0, Width: 1, Height: 1}
	}
	minX, minY := math.Inf(+1), math.Inf(+1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	side := math.Max(maxX-minX, maxY-minY)
	if side == 0 {
		side = 1
	}
	return Rect{X: minX, Y: minY, Width: side, Height: side}
}

func NewQuadTree(config *QuadTreeConfig, boundary Rect) *QuadTree {
	if config == nil {
		config = &QUADTREE_DEFAULT_CONFIG
	}
	if config.CapacityOfEachBlock == 0 {
		config.CapacityOfEachBlock = QUADTREE_DEFAULT_CONFIG.CapacityOfEachBlock
	}
	if config.MaxDepth == 0 {
		config.MaxDepth = QUADTREE_DEFAULT_CONFIG.MaxDepth
	}
	return newQuadTree(config, boundary, 0)
}

func newQuadTree(config *QuadTreeConfig, boundary Rect, depth int) *QuadTree {
	return &QuadTree{
		Center: vector.Vector{0, 0},
		Region: boundary,
		Bodies: make([]int, 0, config.CapacityOfEachBlock),
		config: config,
		depth:  depth,
	}
}

func (qt *QuadTree) Clear() {
	qt.Center = vector.Vector{0, 0}
	qt.Bodies = qt.Bodies[:0]
	for i := range qt.Children {
		qt.Children[i] = nil
	}
	qt.TotalMass = 0
}

// Build resets the tree to the bounding square of pos, inserts every body and
// computes the cell masses. Bodies are inserted without the region check,
// min+side may round below the largest coordinate.
func (qt *QuadTree) Build(pos []vector.Vector) {
	qt.Clear()
	qt.Region = boundingSquare(pos)
	for i := range pos {
		qt.insert(i, pos)
	}
	qt.CalculateMasses(pos)
}

// Insert adds body to the tree, it returns false if pos[body] lies outside of
// the tree's region.
func (qt *QuadTree) Insert(body int, pos []vector.Vector) bool {
	if !qt.Region.Contains(pos[body]) {
		return false
	}
	qt.insert(body, pos)
	return true
}

func (qt *QuadTree) insert(body int, pos []vector.Vector) {
	if qt.Children[0] == nil {
		if len(qt.Bodies) < qt.config.CapacityOfEachBlock || qt.depth >= qt.config.MaxDepth {
			qt.Bodies = append(qt.Bodies, body)
			return
		}
		qt.subdivide(pos)
	}
	qt.Children[qt.quadrant(pos[body])].insert(body, pos)
}

// quadrant picks the child by comparing against the midpoint, so bodies on
// the shared borders of children are never lost to rounding.
func (qt *QuadTree) quadrant(p vector.Vector) int {
	i := 0
	if p.X() >= qt.Region.X+qt.Region.Width/2 {
		i += 1
	}
	if p.Y() >= qt.Region.Y+qt.Region.Height/2 {
		i += 2
	}
	return i
}

func (qt *QuadTree) subdivide(pos []vector.Vector) {
	midX := qt.Region.X + qt.Region.Width/2
	midY := qt.Region.Y + qt.Region.Height/2

	halfWidth := (qt.Region.Width) / 2
	halfHeight := (qt.Region.Height) / 2

	depth := qt.depth + 1
	qt.Children[0] = newQuadTree(qt.config, Rect{X: qt.Region.X, Y: qt.Region.Y, Width: halfWidth, Height: halfHeight}, depth) // Top Left
	qt.Children[1] = newQuadTree(qt.config, Rect{X: midX, Y: qt.Region.Y, Width: halfWidth, Height: halfHeight}, depth)        // Top right
	qt.Children[2] = newQuadTree(qt.config, Rect{X: qt.Region.X, Y: midY, Width: halfWidth, Height: halfHeight}, depth)        // Bottom Left
	qt.Children[3] = newQuadTree(qt.config, Rect{X: midX, Y: midY, Width: halfWidth, Height: halfHeight}, depth)               // Bottom Right

	for _, body := range qt.Bodies {
		qt.Children[qt.quadrant(pos[body])].insert(body, pos)
	}
	qt.Bodies = nil
}

func (qt *QuadTree) CalculateMasses(pos []vector.Vector) {
	qt.TotalMass = 0
	qt.Center = vector.Vector{0, 0}
	if qt.Children[0] == nil {
		// Leaf
		for _, body := range qt.Bodies {
			qt.TotalMass += 1
			vector.In(qt.Center).Add(pos[body])
		}
	} else {
		for _, child := range qt.Children {
			child.CalculateMasses(pos)
			qt.TotalMass += child.TotalMass
			vector.In(qt.Center).Add(child.Center.Scale(child.TotalMass))
		}
	}
	if qt.TotalMass > 0 {
		vector.In(qt.Center).Scale(1 / qt.TotalMass)
	}
}

// CalculateForce adds the repulsion acting on body to force. theta defines the
// accuracy of the simulation, see
// https://en.wikipedia.org/wiki/Barnes%E2%80%93Hut_simulation#Calculating_the_force_acting_on_a_body
func (qt *QuadTree) CalculateForce(force vector.Vector, body int, pos []vector.Vector, theta, scale float64) {
	if qt.TotalMass == 0 {
		return
	}
	p := pos[body]
	if qt.Children[0] == nil {
		for _, other := range qt.Bodies {
			if other == body {
				continue
			}
			addRepulsion(force, p, pos[other], scale)
		}
		return
	}
	d := math.Hypot(qt.Center[0]-p[0], qt.Center[1]-p[1])
	if d > 0 && qt.Region.Width/d < theta && !qt.Region.Contains(p) {
		addRepulsion(force, p, qt.Center, scale*qt.TotalMass)
		return
	}
	for _, child := range qt.Children {
		child.CalculateForce(force, body, pos, theta, scale)
	}
}

// addRepulsion pushes p away from other by scale/dist.
func addRepulsion(force, p, other vector.Vector, scale float64) {
	dx, dy := other[0]-p[0], other[1]-p[1]
	distSq := dx*dx + dy*dy
	if distSq == 0 {
		return
	}
	f := scale / distSq
	force[0] -= dx * f
	force[1] -= dy * f
}
