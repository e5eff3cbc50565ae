// Package engine composes the layout simulator, the multi-edge geometry
// resolver and the derived visual state into one instance with a small
// event surface. The engine performs no I/O: hosts feed it snapshots and
// pointer-derived calls, renderers read the frames it produces.
package engine

import (
	"github.com/recera/graphlens/pkg/geometry"
	"github.com/recera/graphlens/pkg/graph"
	"github.com/recera/graphlens/pkg/layout"
	"github.com/recera/graphlens/pkg/scene"
)

// ArrowAllowance is the extra endpoint inset at the target side so
// arrowheads clear the node circle.
const ArrowAllowance = 4.0

// Events are the callbacks the engine emits toward the host application.
// All fields are optional.
type Events struct {
	OnNodeClick             func(*graph.Node)
	OnEdgeClick             func(*graph.Edge)
	OnBackgroundClick       func()
	OnEdgeCreationRequested func(sourceID, targetID string)
}

// TempEdge is the provisional line rendered during an edge-creation drag.
type TempEdge struct {
	FromID   string
	ToX, ToY float64
	// TargetID is the candidate node currently under the pointer, empty when
	// the drag is over empty space.
	TargetID string
}

// Engine owns one graph's layout and visual state.
type Engine struct {
	snap   *graph.Snapshot
	sim    *layout.Simulator
	params layout.Params

	palette   *scene.Palette
	highlight *scene.Highlight
	camera    *scene.Camera2D
	camera3D  *scene.Camera3D

	events Events

	fingerprint uint64
	autoFit     bool
	visualDirty bool
	clock       float64

	tempEdge *TempEdge
}

// New creates an engine with no data loaded. Renderers show the empty state
// until a snapshot arrives.
func New(params layout.Params, events Events) *Engine {
	return &Engine{
		params:    params,
		palette:   scene.NewPalette(),
		highlight: scene.NewHighlight(),
		camera:    scene.NewCamera2D(),
		camera3D:  scene.NewCamera3D(),
		events:    events,
	}
}

// SetSnapshot replaces the data set wholesale. Positions of nodes that also
// exist in the previous snapshot are carried over so a live edit nudges the
// layout instead of restarting it; the simulation is reheated either way.
// Automatic zoom-to-fit is requested only when the content fingerprint
// changed, i.e. for a genuinely new graph.
func (e *Engine) SetSnapshot(s *graph.Snapshot) {
	s.Validate()
	if e.snap != nil {
		old := make(map[string]*graph.Node, len(e.snap.Nodes))
		for _, n := range e.snap.Nodes {
			old[n.ID] = n
		}
		for _, n := range s.Nodes {
			if prev, ok := old[n.ID]; ok {
				n.X, n.Y, n.Z = prev.X, prev.Y, prev.Z
				n.VX, n.VY, n.VZ = prev.VX, prev.VY, prev.VZ
			}
		}
	}
	geometry.Resolve(s.Edges, e.params.CurveSpacing)
	e.palette.Assign(s.Nodes)
	e.snap = s
	e.highlight.Clear()
	e.tempEdge = nil
	e.sim = layout.New(s.Nodes, s.Edges, e.params)
	e.sim.Reheat(1)
	if fp := s.Fingerprint(); fp != e.fingerprint {
		e.fingerprint = fp
		e.autoFit = true
	}
	e.visualDirty = true
}

// Snapshot returns the active data set, nil before the first SetSnapshot.
func (e *Engine) Snapshot() *graph.Snapshot { return e.snap }

// Empty reports whether there is nothing to render.
func (e *Engine) Empty() bool { return e.snap == nil || len(e.snap.Nodes) == 0 }

// Params returns the live parameter set.
func (e *Engine) Params() layout.Params { return e.params }

// Camera returns the 2D viewport state.
func (e *Engine) Camera() *scene.Camera2D { return e.camera }

// Camera3D returns the 3D camera state.
func (e *Engine) Camera3D() *scene.Camera3D { return e.camera3D }

// Highlight returns the current highlight set.
func (e *Engine) Highlight() *scene.Highlight { return e.highlight }

// Palette returns the type color assignment.
func (e *Engine) Palette() *scene.Palette { return e.palette }

// SetParameter updates one live layout parameter by name, reheating the
// simulation in place. Geometry is re-resolved when the curve spacing
// changed since curvature derives from it.
func (e *Engine) SetParameter(name string, value float64) error {
	if err := e.params.Set(name, value); err != nil {
		return err
	}
	e.applyParams()
	return nil
}

// SetParams swaps the whole parameter set.
func (e *Engine) SetParams(p layout.Params) {
	e.params = p
	e.applyParams()
}

func (e *Engine) applyParams() {
	if e.snap != nil {
		geometry.Resolve(e.snap.Edges, e.params.CurveSpacing)
	}
	if e.sim != nil {
		e.sim.SetParams(e.params)
	}
	e.visualDirty = true
}

// Step advances the physics one tick. It returns false while the simulation
// is quiescent, letting the host skip the integration work and only repaint
// when the visual state is dirty.
func (e *Engine) Step(dt float64) bool {
	e.clock += dt
	if e.sim == nil {
		return false
	}
	return e.sim.Step()
}

// Clock returns the accumulated animation time in seconds, used to phase the
// directional edge particles.
func (e *Engine) Clock() float64 { return e.clock }

// VisualDirty reports whether a repaint is needed independent of physics
// (selection and highlight changes never re-run the simulation).
func (e *Engine) VisualDirty() bool { return e.visualDirty }

// ClearVisualDirty acknowledges a completed repaint.
func (e *Engine) ClearVisualDirty() { e.visualDirty = false }

// ConsumeAutoFit reports a pending zoom-to-fit request and clears it.
func (e *Engine) ConsumeAutoFit() bool {
	f := e.autoFit
	e.autoFit = false
	return f
}

// PathFor builds this frame's drawable path for the edge at index i. Both
// renderer back ends and the hit tester go through here so the curvature
// math cannot diverge between them.
func (e *Engine) PathFor(i int) geometry.Path {
	edge := e.snap.Edges[i]
	src := e.snap.Nodes[edge.SourceIdx]
	tgt := e.snap.Nodes[edge.TargetIdx]
	return geometry.EdgePath(
		geometry.Point{X: src.X, Y: src.Y},
		geometry.Point{X: tgt.X, Y: tgt.Y},
		edge.Curvature,
		e.params.NodeRadius,
		ArrowAllowance,
	)
}

// ClickNode selects a node: highlight becomes the node, its neighbors and
// the connecting edges. Fires OnNodeClick.
func (e *Engine) ClickNode(nodeID string) {
	if e.snap == nil {
		return
	}
	e.highlight.SetNode(e.snap, nodeID)
	e.visualDirty = true
	if n := e.snap.NodeByID(nodeID); n != nil && e.events.OnNodeClick != nil {
		e.events.OnNodeClick(n)
	}
}

// ClickEdge selects an edge: highlight becomes its endpoints and itself.
// Fires OnEdgeClick, which hosts use to lazily load associated content such
// as episode text keyed by ids on the edge.
func (e *Engine) ClickEdge(edgeIndex int) {
	if e.snap == nil || edgeIndex < 0 || edgeIndex >= len(e.snap.Edges) {
		return
	}
	e.highlight.SetEdge(e.snap, edgeIndex)
	e.visualDirty = true
	if e.events.OnEdgeClick != nil {
		e.events.OnEdgeClick(e.snap.Edges[edgeIndex])
	}
}

// ClickBackground clears the selection and highlight sets.
func (e *Engine) ClickBackground() {
	e.highlight.Clear()
	e.visualDirty = true
	if e.events.OnBackgroundClick != nil {
		e.events.OnBackgroundClick()
	}
}

// DragStart pins a node for a drag-hold and keeps the layout flowing around
// it with a small alpha target.
func (e *Engine) DragStart(nodeID string, x, y float64) {
	if e.sim == nil {
		return
	}
	e.sim.Pin(nodeID, x, y, 0)
	e.sim.SetAlphaTarget(0.3)
}

// DragMove re-pins the node at the new pointer position.
func (e *Engine) DragMove(nodeID string, x, y float64) {
	if e.sim != nil {
		e.sim.Pin(nodeID, x, y, 0)
	}
}

// DragEnd unpins the node and lets the cooling schedule resettle the layout.
func (e *Engine) DragEnd(nodeID string) {
	if e.sim == nil {
		return
	}
	e.sim.Unpin(nodeID)
	e.sim.SetAlphaTarget(0)
	e.sim.Reheat(0.3)
}

// SetTempEdge publishes the provisional edge-creation line for renderers;
// nil clears it.
func (e *Engine) SetTempEdge(t *TempEdge) {
	e.tempEdge = t
	e.visualDirty = true
}

// TempEdge returns the provisional edge-creation line, nil when no gesture
// is active.
func (e *Engine) TempEdge() *TempEdge { return e.tempEdge }

// RequestEdgeCreation emits the edge-creation request to the host. The
// engine itself never mutates the graph; the host round-trips the change
// through its backend and pushes a fresh snapshot.
func (e *Engine) RequestEdgeCreation(sourceID, targetID string) {
	if e.events.OnEdgeCreationRequested != nil {
		e.events.OnEdgeCreationRequested(sourceID, targetID)
	}
}
