package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/graph"
	"github.com/recera/graphlens/pkg/layout"
)

// fixedEngine builds an engine with hand-placed nodes and the simulation
// stopped, so hit tests work against known coordinates.
func fixedEngine(t *testing.T, events engine.Events) *engine.Engine {
	t.Helper()
	snap := &graph.Snapshot{
		Nodes: []*graph.Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 200, Y: 0},
			{ID: "c", X: 100, Y: 150},
		},
		Edges: []*graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
		},
	}
	e := engine.New(layout.DefaultParams(), events)
	e.SetSnapshot(snap)
	// Let the simulation cool, then overwrite with hand-placed positions so
	// hit tests have known coordinates.
	for e.Step(1.0 / 60) {
	}
	moveTo(snap, "a", 0, 0)
	moveTo(snap, "b", 200, 0)
	moveTo(snap, "c", 100, 150)
	return e
}

func moveTo(s *graph.Snapshot, id string, x, y float64) {
	n := s.NodeByID(id)
	n.X, n.Y = x, y
	n.VX, n.VY = 0, 0
}

func TestHitNodePicksTopmost(t *testing.T) {
	e := fixedEngine(t, engine.Events{})
	c := New(e)

	assert.Equal(t, "a", c.HitNode(0, 0))
	assert.Equal(t, "a", c.HitNode(5, 5))
	assert.Equal(t, "b", c.HitNode(195, 3))
	assert.Equal(t, "", c.HitNode(50, 80))

	// Overlapping nodes resolve to the later (topmost) one.
	moveTo(e.Snapshot(), "c", 1, 1)
	assert.Equal(t, "c", c.HitNode(0, 0))
}

func TestHitEdgeWithinPickRadius(t *testing.T) {
	e := fixedEngine(t, engine.Events{})
	c := New(e)

	// The a->b edge runs along y=0 from x=12 to x=184.
	assert.Equal(t, 0, c.HitEdge(100, 2))
	assert.Equal(t, 0, c.HitEdge(100, -5))
	assert.Equal(t, -1, c.HitEdge(100, 40))

	// Zooming out widens the pick distance in world units.
	e.Camera().Scale = 0.25
	assert.Equal(t, 0, c.HitEdge(100, 20))
}

func TestClickNodeHighlights(t *testing.T) {
	var clicked string
	e := fixedEngine(t, engine.Events{
		OnNodeClick: func(n *graph.Node) { clicked = n.ID },
	})
	c := New(e)

	c.PointerDown(0, 0, false)
	c.PointerUp()

	assert.Equal(t, "a", clicked)
	assert.True(t, e.Highlight().HasNode("a"))
	assert.True(t, e.Highlight().HasNode("b"))
	assert.False(t, e.Highlight().HasNode("c"))
}

func TestClickEdgeThenBackgroundClears(t *testing.T) {
	var edgeClicks, bgClicks int
	e := fixedEngine(t, engine.Events{
		OnEdgeClick:       func(*graph.Edge) { edgeClicks++ },
		OnBackgroundClick: func() { bgClicks++ },
	})
	c := New(e)

	c.PointerDown(100, 2, false)
	c.PointerUp()
	assert.Equal(t, 1, edgeClicks)
	assert.True(t, e.Highlight().HasEdge(0))

	c.PointerDown(400, 400, false)
	c.PointerUp()
	assert.Equal(t, 1, bgClicks)
	assert.True(t, e.Highlight().Empty())
}

func TestSlopKeepsJitteryPressAClick(t *testing.T) {
	var clicked string
	e := fixedEngine(t, engine.Events{
		OnNodeClick: func(n *graph.Node) { clicked = n.ID },
	})
	c := New(e)

	c.PointerDown(0, 0, false)
	c.PointerMove(1, 1)
	c.PointerMove(2, 0)
	c.PointerUp()
	assert.Equal(t, "a", clicked)
	assert.False(t, e.Snapshot().NodeByID("a").Pinned(), "a click never pins")
}

func TestDragNodePinsUnderPointer(t *testing.T) {
	var clicked bool
	e := fixedEngine(t, engine.Events{
		OnNodeClick: func(*graph.Node) { clicked = true },
	})
	c := New(e)
	n := e.Snapshot().NodeByID("a")

	c.PointerDown(0, 0, false)
	c.PointerMove(30, 40)
	assert.True(t, c.Dragging())
	assert.True(t, n.Pinned())
	e.Step(1.0 / 60)
	assert.Equal(t, 30.0, n.X)
	assert.Equal(t, 40.0, n.Y)

	c.PointerUp()
	assert.False(t, n.Pinned())
	assert.False(t, clicked, "a drag is not a click")
}

func TestPanMovesCameraNotNodes(t *testing.T) {
	e := fixedEngine(t, engine.Events{})
	c := New(e)
	n := e.Snapshot().NodeByID("b")

	c.PointerDown(400, 400, false)
	c.PointerMove(450, 430)
	c.PointerMove(460, 440)
	c.PointerUp()

	assert.Equal(t, 60.0, e.Camera().OffsetX)
	assert.Equal(t, 40.0, e.Camera().OffsetY)
	assert.Equal(t, 200.0, n.X, "panning never moves physics positions")
	assert.Equal(t, 0.0, n.Y)
}

func TestEdgeDragToTargetRequestsCreation(t *testing.T) {
	var reqs [][2]string
	e := fixedEngine(t, engine.Events{
		OnEdgeCreationRequested: func(s, t string) { reqs = append(reqs, [2]string{s, t}) },
	})
	c := New(e)

	c.PointerDown(0, 0, true)
	require.NotNil(t, e.TempEdge())
	assert.Equal(t, "a", e.TempEdge().FromID)

	c.PointerMove(100, 75)
	assert.Equal(t, "", e.TempEdge().TargetID)
	c.PointerMove(198, 2)
	assert.Equal(t, "b", e.TempEdge().TargetID)

	c.PointerUp()
	require.Len(t, reqs, 1)
	assert.Equal(t, [2]string{"a", "b"}, reqs[0])
	assert.Nil(t, e.TempEdge(), "temp edge clears on release")
}

func TestEdgeDragToEmptySpaceCancels(t *testing.T) {
	var reqs int
	e := fixedEngine(t, engine.Events{
		OnEdgeCreationRequested: func(string, string) { reqs++ },
	})
	c := New(e)

	c.PointerDown(0, 0, true)
	c.PointerMove(300, 300)
	c.PointerUp()

	assert.Zero(t, reqs, "no target, no request")
	assert.Nil(t, e.TempEdge())
}

func TestEdgeDragBackOverSourceDoesNotSelfTarget(t *testing.T) {
	var reqs int
	e := fixedEngine(t, engine.Events{
		OnEdgeCreationRequested: func(string, string) { reqs++ },
	})
	c := New(e)

	c.PointerDown(0, 0, true)
	c.PointerMove(50, 0)
	c.PointerMove(2, 2) // back over the source node
	assert.Equal(t, "", e.TempEdge().TargetID)
	c.PointerUp()
	assert.Zero(t, reqs)
}

func TestModifierOverEmptySpaceIsAPlainGesture(t *testing.T) {
	e := fixedEngine(t, engine.Events{})
	c := New(e)

	c.PointerDown(400, 400, true)
	assert.Nil(t, e.TempEdge())
	c.PointerMove(420, 400)
	c.PointerUp()
	assert.Equal(t, 20.0, e.Camera().OffsetX, "modifier over background still pans")
}

func TestWheelZoomClampsFactor(t *testing.T) {
	e := fixedEngine(t, engine.Events{})
	c := New(e)

	c.Wheel(-100, 0, 0) // zoom in
	assert.InDelta(t, 1.2, e.Camera().Scale, 1e-9)

	// Huge deltas clamp to a half-step per event.
	e.Camera().Scale = 1
	c.Wheel(-100000, 0, 0)
	assert.InDelta(t, 1.5, e.Camera().Scale, 1e-9)
	e.Camera().Scale = 1
	c.Wheel(100000, 0, 0)
	assert.InDelta(t, 0.5, e.Camera().Scale, 1e-9)
}
