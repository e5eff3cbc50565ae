// Package interact turns raw pointer events into engine actions: click
// versus drag disambiguation, node drag-hold, the modifier-gated
// edge-creation gesture, and pan/zoom camera control. It owns no visual
// state; everything it decides flows through the engine.
package interact

import (
	"math"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/geometry"
)

// clickSlop is the screen-space distance (px) a pointer may travel before a
// press stops counting as a click.
const clickSlop = 3.0

// edgePickRadius is the screen-space pick distance (px) for edge strokes.
const edgePickRadius = 6.0

type mode int

const (
	modeIdle mode = iota
	modePress
	modeDragNode
	modeDragEdge
	modePan
)

// Controller is the per-viewport gesture state machine. Feed it pointer
// events in screen coordinates; it consults the engine for hit-testing and
// issues clicks, drags, pans and edge-creation requests.
type Controller struct {
	eng *engine.Engine

	mode           mode
	pressX, pressY float64
	lastX, lastY   float64
	moved          bool

	pressNodeID  string
	edgeSourceID string
	edgeTargetID string
}

// New creates a controller bound to an engine.
func New(eng *engine.Engine) *Controller {
	return &Controller{eng: eng}
}

// Dragging reports whether a node or edge-creation drag is in progress.
func (c *Controller) Dragging() bool {
	return c.mode == modeDragNode || c.mode == modeDragEdge
}

// HitNode returns the id of the topmost node under the world point, or "".
// Later nodes draw on top, so iterate back to front.
func (c *Controller) HitNode(wx, wy float64) string {
	snap := c.eng.Snapshot()
	if snap == nil {
		return ""
	}
	r := c.eng.Params().NodeRadius
	for i := len(snap.Nodes) - 1; i >= 0; i-- {
		n := snap.Nodes[i]
		dx, dy := wx-n.X, wy-n.Y
		if dx*dx+dy*dy <= r*r {
			return n.ID
		}
	}
	return ""
}

// HitEdge returns the index of the closest edge within the pick radius of
// the world point, or -1. The pick radius is screen-constant, so it widens
// in world units as the camera zooms out.
func (c *Controller) HitEdge(wx, wy float64) int {
	snap := c.eng.Snapshot()
	if snap == nil {
		return -1
	}
	limit := edgePickRadius / c.eng.Camera().Scale
	best, bestDist := -1, math.Inf(1)
	for i, e := range snap.Edges {
		if e.SelfLoop() {
			continue
		}
		p := c.eng.PathFor(i)
		if p.Degenerate {
			continue
		}
		if d := p.DistanceTo(geometry.Point{X: wx, Y: wy}); d <= limit && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// PointerDown begins a gesture. With the modifier held over a node the
// gesture becomes an edge-creation drag instead of a move.
func (c *Controller) PointerDown(sx, sy float64, modifier bool) {
	c.pressX, c.pressY = sx, sy
	c.lastX, c.lastY = sx, sy
	c.moved = false
	wx, wy := c.eng.Camera().ScreenToWorld(sx, sy)
	c.pressNodeID = c.HitNode(wx, wy)
	if modifier && c.pressNodeID != "" {
		c.mode = modeDragEdge
		c.edgeSourceID = c.pressNodeID
		c.edgeTargetID = ""
		c.eng.SetTempEdge(&engine.TempEdge{FromID: c.edgeSourceID, ToX: wx, ToY: wy})
		return
	}
	c.mode = modePress
}

// PointerMove advances the active gesture.
func (c *Controller) PointerMove(sx, sy float64) {
	dx, dy := sx-c.lastX, sy-c.lastY
	c.lastX, c.lastY = sx, sy
	if !c.moved {
		px, py := sx-c.pressX, sy-c.pressY
		if px*px+py*py > clickSlop*clickSlop {
			c.moved = true
		}
	}
	wx, wy := c.eng.Camera().ScreenToWorld(sx, sy)

	switch c.mode {
	case modePress:
		if !c.moved {
			return
		}
		// Promote the press into a drag: node drag when the press landed on
		// a node, camera pan otherwise.
		if c.pressNodeID != "" {
			c.mode = modeDragNode
			c.eng.DragStart(c.pressNodeID, wx, wy)
		} else {
			c.mode = modePan
			c.eng.Camera().Pan(dx, dy)
		}
	case modeDragNode:
		c.eng.DragMove(c.pressNodeID, wx, wy)
	case modePan:
		c.eng.Camera().Pan(dx, dy)
	case modeDragEdge:
		c.edgeTargetID = c.HitNode(wx, wy)
		if c.edgeTargetID == c.edgeSourceID {
			c.edgeTargetID = ""
		}
		c.eng.SetTempEdge(&engine.TempEdge{
			FromID:   c.edgeSourceID,
			ToX:      wx,
			ToY:      wy,
			TargetID: c.edgeTargetID,
		})
	}
}

// PointerUp completes the gesture: a short press resolves to a click, drags
// release their node, and an edge-creation drag emits a request only when a
// target node was under the pointer.
func (c *Controller) PointerUp() {
	defer func() {
		c.mode = modeIdle
		c.pressNodeID = ""
		c.edgeSourceID = ""
		c.edgeTargetID = ""
	}()

	switch c.mode {
	case modePress:
		if c.moved {
			return
		}
		if c.pressNodeID != "" {
			c.eng.ClickNode(c.pressNodeID)
			return
		}
		wx, wy := c.eng.Camera().ScreenToWorld(c.lastX, c.lastY)
		if i := c.HitEdge(wx, wy); i >= 0 {
			c.eng.ClickEdge(i)
			return
		}
		c.eng.ClickBackground()
	case modeDragNode:
		c.eng.DragEnd(c.pressNodeID)
	case modeDragEdge:
		if c.edgeTargetID != "" {
			c.eng.RequestEdgeCreation(c.edgeSourceID, c.edgeTargetID)
		}
		c.eng.SetTempEdge(nil)
	}
}

// Wheel zooms the camera about the pointer. Camera transforms never touch
// node physics positions.
func (c *Controller) Wheel(deltaY, sx, sy float64) {
	factor := 1.0 - math.Max(-0.5, math.Min(0.5, deltaY/500.0))
	c.eng.Camera().ZoomAt(factor, sx, sy)
}
