package scene

import "github.com/recera/graphlens/pkg/graph"

// DimOpacity is the opacity applied to elements outside a non-empty
// highlight set. With an empty set everything renders fully opaque.
const DimOpacity = 0.3

// Highlight is the transient emphasis state: node ids and edge indices to
// render at full strength while everything else dims. It is recomputed on
// every selection action and never persisted.
type Highlight struct {
	Nodes map[string]struct{}
	Edges map[int]struct{}
}

// NewHighlight returns an empty highlight set.
func NewHighlight() *Highlight {
	return &Highlight{
		Nodes: make(map[string]struct{}),
		Edges: make(map[int]struct{}),
	}
}

// Empty reports whether no element is highlighted.
func (h *Highlight) Empty() bool {
	return len(h.Nodes) == 0 && len(h.Edges) == 0
}

// Clear drops all emphasis.
func (h *Highlight) Clear() {
	h.Nodes = make(map[string]struct{})
	h.Edges = make(map[int]struct{})
}

// SetNode recomputes the highlight for a clicked node: the node itself, its
// neighbors and every connecting edge index.
func (h *Highlight) SetNode(s *graph.Snapshot, nodeID string) {
	h.Clear()
	h.Nodes[nodeID] = struct{}{}
	for i, e := range s.Edges {
		switch nodeID {
		case e.Source:
			h.Nodes[e.Target] = struct{}{}
			h.Edges[i] = struct{}{}
		case e.Target:
			h.Nodes[e.Source] = struct{}{}
			h.Edges[i] = struct{}{}
		}
	}
}

// SetEdge recomputes the highlight for a clicked edge: its two endpoints and
// the edge itself.
func (h *Highlight) SetEdge(s *graph.Snapshot, edgeIndex int) {
	h.Clear()
	if edgeIndex < 0 || edgeIndex >= len(s.Edges) {
		return
	}
	e := s.Edges[edgeIndex]
	h.Nodes[e.Source] = struct{}{}
	h.Nodes[e.Target] = struct{}{}
	h.Edges[edgeIndex] = struct{}{}
}

// HasNode reports whether the node id is in the set.
func (h *Highlight) HasNode(id string) bool {
	_, ok := h.Nodes[id]
	return ok
}

// HasEdge reports whether the edge index is in the set.
func (h *Highlight) HasEdge(i int) bool {
	_, ok := h.Edges[i]
	return ok
}

// NodeOpacity returns the render opacity for a node under the current set.
func (h *Highlight) NodeOpacity(id string) float64 {
	if h.Empty() || h.HasNode(id) {
		return 1
	}
	return DimOpacity
}

// EdgeOpacity returns the render opacity for an edge under the current set.
func (h *Highlight) EdgeOpacity(i int) float64 {
	if h.Empty() || h.HasEdge(i) {
		return 1
	}
	return DimOpacity
}
