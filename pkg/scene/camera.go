package scene

import (
	"math"

	"github.com/recera/graphlens/pkg/graph"
)

// Camera2D is the pan/zoom viewport for the 2D back end: world coordinates
// map to screen as screen = world*Scale + Offset. The interaction controller
// mutates it; node physics never do.
type Camera2D struct {
	Scale            float64
	OffsetX, OffsetY float64
	MinScale         float64
	MaxScale         float64
}

// NewCamera2D returns an identity camera with the default zoom clamps.
func NewCamera2D() *Camera2D {
	return &Camera2D{Scale: 1, MinScale: 0.05, MaxScale: 8}
}

// ScreenToWorld converts a screen point into world coordinates.
func (c *Camera2D) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.OffsetX) / c.Scale, (sy - c.OffsetY) / c.Scale
}

// WorldToScreen converts a world point into screen coordinates.
func (c *Camera2D) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Scale + c.OffsetX, wy*c.Scale + c.OffsetY
}

// Pan shifts the viewport by a screen-space delta.
func (c *Camera2D) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt scales the viewport by factor keeping the screen point (sx, sy)
// fixed, clamped to the camera's scale range.
func (c *Camera2D) ZoomAt(factor, sx, sy float64) {
	next := c.Scale * factor
	if next < c.MinScale {
		next = c.MinScale
	}
	if next > c.MaxScale {
		next = c.MaxScale
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Scale = next
	c.OffsetX = sx - wx*next
	c.OffsetY = sy - wy*next
}

// FitTarget is a desired camera pose, used both for immediate jumps and for
// animated transitions driven by the host.
type FitTarget struct {
	Scale            float64
	OffsetX, OffsetY float64
}

// maxFitScale caps zoom-to-fit so tiny graphs don't blow up to pixel mush.
const maxFitScale = 2.0

// FitToNodes computes the pose that frames all node positions in a viewport
// of the given size with padding. Empty node sets get the identity pose.
func FitToNodes(nodes []*graph.Node, width, height, padding float64) FitTarget {
	if len(nodes) == 0 {
		return FitTarget{Scale: 1}
	}
	minX, minY := nodes[0].X, nodes[0].Y
	maxX, maxY := minX, minY
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	gw := maxX - minX
	if gw <= 0 {
		gw = 1
	}
	gh := maxY - minY
	if gh <= 0 {
		gh = 1
	}
	s := math.Min((width-2*padding)/gw, (height-2*padding)/gh)
	if s <= 0 {
		s = 1
	}
	if s > maxFitScale {
		s = maxFitScale
	}
	return FitTarget{
		Scale:   s,
		OffsetX: width*0.5 - (minX+gw*0.5)*s,
		OffsetY: height*0.5 - (minY+gh*0.5)*s,
	}
}

// Apply jumps the camera to a fit target.
func (c *Camera2D) Apply(t FitTarget) {
	c.Scale = t.Scale
	c.OffsetX = t.OffsetX
	c.OffsetY = t.OffsetY
}
