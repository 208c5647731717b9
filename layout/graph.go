package layout

import (
	"math"

	"github.com/quartercastle/vector"
	"golang.org/x/exp/constraints"
)

// NodeRecord is one entry of the external node list: a unique name, the names
// of the nodes it depends on and an optional group tag.
type NodeRecord struct {
	Name         string
	Dependencies []string
	Group        string
}

type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
	index map[string]int
}

// Node is identified by its index in Graph.Nodes. Group is only used for
// presentation, the physics never read it.
type Node struct {
	Name  string        `json:"name"`
	Group string        `json:"group,omitempty"`
	Pos   vector.Vector `json:"pos,omitempty"`
}

// Edge points from a node (Source) to one of its dependencies (Target).
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// NewGraph builds the dense node array and the edge list from records.
// Dependencies are resolved by name, an unknown name fails the whole
// construction with an *UnresolvedDependencyError.
func NewGraph(records []NodeRecord) (*Graph, error) {
	graph := Graph{
		Nodes: make([]*Node, 0, len(records)),
		Edges: []*Edge{},
		index: make(map[string]int, len(records)),
	}
	for _, record := range records {
		if _, exists := graph.index[record.Name]; exists {
			return nil, &DuplicateNodeError{Name: record.Name}
		}
		graph.index[record.Name] = len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, &Node{Name: record.Name, Group: record.Group})
	}
	for source, record := range records {
		for _, dep := range record.Dependencies {
			target, exists := graph.index[dep]
			if !exists {
				return nil, &UnresolvedDependencyError{Node: record.Name, Dependency: dep}
			}
			// parallel edges and self-loops are kept on purpose
			graph.Edges = append(graph.Edges, &Edge{Source: source, Target: target})
		}
	}
	return &graph, nil
}

// EmptyGraph returns a graph without nodes.
func EmptyGraph() *Graph {
	return &Graph{Nodes: []*Node{}, Edges: []*Edge{}, index: map[string]int{}}
}

// Lookup returns the index of the node called name.
func (g *Graph) Lookup(name string) (int, bool) {
	idx, ok := g.index[name]
	return idx, ok
}

func pointOnCircle(i, totalPoints int, radius float64, center vector.Vector) vector.Vector {
	return vector.Vector{
		math.Sin(float64(i) * 2.0 * math.Pi / float64(totalPoints)),
		math.Cos(float64(i) * 2.0 * math.Pi / float64(totalPoints)),
	}.Scale(radius).Add(center)
}

func clamp[T constraints.Float | constraints.Integer](in, lo, hi T) T {
	if in > hi {
		return hi
	} else if in < lo {
		return lo
	}
	return in
}
