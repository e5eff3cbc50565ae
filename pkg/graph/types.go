package graph

// Node represents a graph node together with its mutable simulation state.
// Identity fields (ID, Name, Type, Labels, Attributes) belong to the caller;
// position and velocity belong to the layout simulator.
type Node struct {
	ID         string
	Name       string
	Type       string
	Labels     []string
	Attributes map[string]any

	// Simulation state, updated in place every tick.
	X, Y, Z    float64
	VX, VY, VZ float64

	// Pin targets. When non-nil the simulator holds the node at the target
	// and zeroes its velocity (used for drag-hold).
	FX, FY, FZ *float64
}

// Pinned reports whether the node is currently held at a fixed position.
func (n *Node) Pinned() bool { return n.FX != nil }

// DisplayName returns the label text for the node.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// ColorKey returns the string used to bucket the node into a palette color.
// The first label wins over the generic type, matching how the backend tags
// entity nodes.
func (n *Node) ColorKey() string {
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return n.Type
}

// Edge represents a directed, typed edge. Source/Target reference node IDs;
// SourceIdx/TargetIdx are resolved against the snapshot's node slice during
// validation. The geometry fields are derived by the multi-edge resolver.
type Edge struct {
	Source   string
	Target   string
	Type     string
	Fact     string
	UUID     string
	Episodes []string

	SourceIdx int
	TargetIdx int

	// Derived geometry. PairKey identifies the unordered endpoint pair,
	// ParallelIndex/ParallelCount place this edge among edges sharing the
	// pair, Curvature is the signed bow offset and Reversed records whether
	// the declared direction opposes the canonical pair order.
	PairKey       string
	ParallelIndex int
	ParallelCount int
	Curvature     float64
	Reversed      bool
}

// SelfLoop reports whether the edge starts and ends on the same node.
func (e *Edge) SelfLoop() bool { return e.Source == e.Target }

// Snapshot is one immutable input graph handed to the engine. The engine
// takes ownership of the contained nodes' simulation state; callers replace
// the data set wholesale rather than mutating it.
type Snapshot struct {
	Nodes []*Node
	Edges []*Edge
}
