package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/graphlens/pkg/graph"
)

func testSnapshot() *graph.Snapshot {
	return &graph.Snapshot{
		Nodes: []*graph.Node{
			{ID: "a", Type: "Person"},
			{ID: "b", Type: "Person"},
			{ID: "c", Type: "Place"},
			{ID: "d", Type: "Thing"},
		},
		Edges: []*graph.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "d", Target: "b"},
			{Source: "a", Target: "c"},
		},
	}
}

func TestHighlightEmptyIsFullyOpaque(t *testing.T) {
	h := NewHighlight()
	assert.True(t, h.Empty())
	assert.Equal(t, 1.0, h.NodeOpacity("anything"))
	assert.Equal(t, 1.0, h.EdgeOpacity(0))
}

func TestHighlightSetNodeExpandsToNeighborhood(t *testing.T) {
	h := NewHighlight()
	h.SetNode(testSnapshot(), "b")

	// b plus its neighbors a, c and d; the a->c edge stays out.
	assert.Len(t, h.Nodes, 4)
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.True(t, h.HasNode(id), "expected %q highlighted", id)
	}
	assert.Len(t, h.Edges, 3)
	assert.False(t, h.HasEdge(3))

	assert.Equal(t, 1.0, h.NodeOpacity("b"))
	assert.Equal(t, DimOpacity, h.EdgeOpacity(3))
}

func TestHighlightSetEdge(t *testing.T) {
	h := NewHighlight()
	h.SetEdge(testSnapshot(), 1)

	assert.Len(t, h.Nodes, 2)
	assert.True(t, h.HasNode("b"))
	assert.True(t, h.HasNode("c"))
	assert.True(t, h.HasEdge(1))
	assert.Equal(t, DimOpacity, h.NodeOpacity("a"))

	// Out-of-range index leaves the set empty rather than panicking.
	h.SetEdge(testSnapshot(), 99)
	assert.True(t, h.Empty())
}

func TestHighlightClearRestoresOpacity(t *testing.T) {
	h := NewHighlight()
	h.SetNode(testSnapshot(), "a")
	require.False(t, h.Empty())
	h.Clear()
	assert.True(t, h.Empty())
	assert.Equal(t, 1.0, h.NodeOpacity("d"))
}

func TestPaletteAssignmentIsDeterministic(t *testing.T) {
	snap := testSnapshot()
	p1 := NewPalette()
	p1.Assign(snap.Nodes)
	p2 := NewPalette()
	p2.Assign(snap.Nodes)

	for _, n := range snap.Nodes {
		assert.Equal(t, p1.ColorFor(n.ColorKey()), p2.ColorFor(n.ColorKey()))
	}
	// Same type bucket, same color; distinct buckets differ.
	assert.Equal(t, p1.ColorFor("Person"), p1.ColorFor("Person"))
	assert.NotEqual(t, p1.ColorFor("Person"), p1.ColorFor("Place"))

	// Re-assigning the same nodes must not rotate the wheel.
	before := p1.ColorFor("Place")
	p1.Assign(snap.Nodes)
	assert.Equal(t, before, p1.ColorFor("Place"))
}

func TestZoomAlphaFadeBand(t *testing.T) {
	const threshold = 1.5

	assert.Equal(t, 0.0, ZoomAlpha(0.1, threshold, false))
	assert.Equal(t, 0.0, ZoomAlpha(threshold*fadeBand, threshold, false))
	assert.Equal(t, 1.0, ZoomAlpha(threshold, threshold, false))
	assert.Equal(t, 1.0, ZoomAlpha(5, threshold, false))

	mid := ZoomAlpha((threshold*fadeBand+threshold)/2, threshold, false)
	assert.InDelta(t, 0.5, mid, 1e-9)

	// Highlighted labels ignore the fade entirely.
	assert.Equal(t, 1.0, ZoomAlpha(0.1, threshold, true))
	// A zero threshold disables fading.
	assert.Equal(t, 1.0, ZoomAlpha(0.1, 0, false))
}

func TestDistanceAlphaFadeBand(t *testing.T) {
	const threshold = 400.0
	far := threshold / fadeBand

	assert.Equal(t, 1.0, DistanceAlpha(10, threshold, false))
	assert.Equal(t, 1.0, DistanceAlpha(threshold, threshold, false))
	assert.Equal(t, 0.0, DistanceAlpha(far, threshold, false))
	assert.Equal(t, 0.0, DistanceAlpha(far*2, threshold, false))

	mid := DistanceAlpha((threshold+far)/2, threshold, false)
	assert.InDelta(t, 0.5, mid, 1e-9)

	assert.Equal(t, 1.0, DistanceAlpha(far*2, threshold, true))
}

func TestCamera2DRoundTrip(t *testing.T) {
	c := NewCamera2D()
	c.Scale = 1.7
	c.OffsetX, c.OffsetY = 40, -25

	wx, wy := c.ScreenToWorld(300, 200)
	sx, sy := c.WorldToScreen(wx, wy)
	assert.InDelta(t, 300, sx, 1e-9)
	assert.InDelta(t, 200, sy, 1e-9)
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	c := NewCamera2D()
	c.OffsetX, c.OffsetY = 15, 30
	ax, ay := 120.0, 90.0
	wx, wy := c.ScreenToWorld(ax, ay)

	c.ZoomAt(1.5, ax, ay)

	sx, sy := c.WorldToScreen(wx, wy)
	assert.InDelta(t, ax, sx, 1e-9)
	assert.InDelta(t, ay, sy, 1e-9)
	assert.InDelta(t, 1.5, c.Scale, 1e-9)
}

func TestZoomAtClampsScale(t *testing.T) {
	c := NewCamera2D()
	c.ZoomAt(1000, 0, 0)
	assert.Equal(t, c.MaxScale, c.Scale)
	c.ZoomAt(1e-9, 0, 0)
	assert.Equal(t, c.MinScale, c.Scale)
}

func TestFitToNodesFramesGraph(t *testing.T) {
	ns := []*graph.Node{
		{ID: "a", X: -100, Y: -50},
		{ID: "b", X: 100, Y: 50},
		{ID: "c", X: 0, Y: 0},
	}
	ft := FitToNodes(ns, 800, 600, 40)

	c := NewCamera2D()
	c.Apply(ft)
	for _, n := range ns {
		sx, sy := c.WorldToScreen(n.X, n.Y)
		assert.GreaterOrEqual(t, sx, 40.0)
		assert.LessOrEqual(t, sx, 760.0)
		assert.GreaterOrEqual(t, sy, 40.0)
		assert.LessOrEqual(t, sy, 560.0)
	}
	// The bounds center lands on the viewport center.
	cx, cy := c.WorldToScreen(0, 0)
	assert.InDelta(t, 400, cx, 1e-9)
	assert.InDelta(t, 300, cy, 1e-9)
}

func TestFitToNodesCapsScaleForTinyGraphs(t *testing.T) {
	ns := []*graph.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 2, Y: 2}}
	ft := FitToNodes(ns, 800, 600, 40)
	assert.Equal(t, maxFitScale, ft.Scale)

	assert.Equal(t, FitTarget{Scale: 1}, FitToNodes(nil, 800, 600, 40))
}

func TestCamera3DProjection(t *testing.T) {
	c := NewCamera3D()

	// The origin projects to the screen center at perspective scale
	// focal/distance.
	origin := &graph.Node{}
	sx, sy, depth, visible := c.Project(0, 0, 0, 800, 600)
	require.True(t, visible)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)
	assert.InDelta(t, c.Distance, depth, 1e-9)
	assert.InDelta(t, c.Focal/c.Distance, c.PerspectiveScale(origin), 1e-9)

	// Dollying in grows the perspective scale.
	before := c.PerspectiveScale(origin)
	c.Dolly(-200)
	assert.Greater(t, c.PerspectiveScale(origin), before)
}

func TestCamera3DOrbitPreservesDistance(t *testing.T) {
	c := NewCamera3D()
	d0 := c.DistanceToPoint(0, 0, 0)
	c.Orbit(0.7, 0.3)
	assert.InDelta(t, d0, c.DistanceToPoint(0, 0, 0), 1e-6)
}
