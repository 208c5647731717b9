package layout

// NodeView is the read-only state of a node handed to renderers.
type NodeView struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Group string  `json:"group,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type EdgeView struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// View is a copy of the simulation state after Tick ticks.
type View struct {
	Tick  int        `json:"tick"`
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// View copies the current positions and edges. It never observes a tick in
// progress.
func (fs *ForceSimulation) View() View {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v := View{
		Tick:  fs.ticks,
		Nodes: make([]NodeView, len(fs.graph.Nodes)),
		Edges: make([]EdgeView, len(fs.graph.Edges)),
	}
	for i, node := range fs.graph.Nodes {
		v.Nodes[i] = NodeView{ID: i, Name: node.Name, Group: node.Group, X: node.Pos.X(), Y: node.Pos.Y()}
	}
	for i, edge := range fs.graph.Edges {
		v.Edges[i] = EdgeView{Source: edge.Source, Target: edge.Target}
	}
	return v
}
