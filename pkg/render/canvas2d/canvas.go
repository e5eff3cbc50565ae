// Package canvas2d is the immediate-mode 2D back end: nodes as filled
// circles, edges as straight or quadratic strokes with arrowheads and
// directional particles, and zoom-faded labels. Every frame is drawn from
// scratch off the engine's current state.
package canvas2d

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/geometry"
	"github.com/recera/graphlens/pkg/render"
	"github.com/recera/graphlens/pkg/scene"
)

const (
	backgroundColor = "#0b0e14"
	labelColor      = "#eaeef3"
	tempEdgeColor   = "#9ad0ff"
	emptyStateText  = "no graph data"

	arrowLength   = 8.0
	arrowWidth    = 5.0
	particleSpeed = 0.35 // path traversals per second
	particleCount = 3
)

// Renderer draws frames with fogleman/gg. Safe to reuse across frames; not
// safe for concurrent use.
type Renderer struct {
	face font.Face
}

// New creates a 2D renderer with the bundled label font.
func New() (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return &Renderer{
		face: truetype.NewFace(f, &truetype.Options{Size: 12}),
	}, nil
}

// Render implements render.Renderer.
func (r *Renderer) Render(e *engine.Engine, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, render.ErrNoSurface
	}
	dc := gg.NewContext(width, height)
	dc.SetHexColor(backgroundColor)
	dc.Clear()
	dc.SetFontFace(r.face)

	if e.Empty() {
		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(emptyStateText, float64(width)/2, float64(height)/2, 0.5, 0.5)
		return dc.Image(), nil
	}

	snap := e.Snapshot()
	cam := e.Camera()
	hl := e.Highlight()
	params := e.Params()

	for i, edge := range snap.Edges {
		opacity := hl.EdgeOpacity(i)
		if edge.SelfLoop() {
			r.drawSelfLoop(dc, e, i, opacity)
			continue
		}
		path := e.PathFor(i)
		if path.Degenerate {
			continue
		}
		sp := screenPath(path, cam)

		setHexAlpha(dc, scene.EdgeColor, opacity)
		dc.SetLineWidth(1)
		dc.MoveTo(sp.Start.X, sp.Start.Y)
		if sp.Control != nil {
			dc.QuadraticTo(sp.Control.X, sp.Control.Y, sp.End.X, sp.End.Y)
		} else {
			dc.LineTo(sp.End.X, sp.End.Y)
		}
		dc.Stroke()

		r.drawArrowhead(dc, sp, opacity)
		if hl.HasEdge(i) {
			r.drawParticles(dc, sp, e.Clock())
		}

		if alpha := scene.ZoomAlpha(cam.Scale, params.EdgeLabelZoom, hl.HasEdge(i)); alpha > 0 && edge.Type != "" {
			lp := sp.LabelPoint()
			setHexAlpha(dc, labelColor, alpha*opacity)
			dc.DrawStringAnchored(edge.Type, lp.X, lp.Y-4, 0.5, 1)
		}
	}

	for _, n := range snap.Nodes {
		opacity := hl.NodeOpacity(n.ID)
		sx, sy := cam.WorldToScreen(n.X, n.Y)
		sr := params.NodeRadius * cam.Scale

		setHexAlpha(dc, e.Palette().ColorFor(n.ColorKey()), opacity)
		dc.DrawCircle(sx, sy, sr)
		dc.Fill()

		if !hl.Empty() && hl.HasNode(n.ID) {
			dc.SetHexColor(scene.HighlightStroke)
			dc.SetLineWidth(2)
			dc.DrawCircle(sx, sy, sr+3)
			dc.Stroke()
		}

		if alpha := scene.ZoomAlpha(cam.Scale, params.NodeLabelZoom, hl.HasNode(n.ID) && !hl.Empty()); alpha > 0 {
			setHexAlpha(dc, labelColor, alpha*opacity)
			dc.DrawStringAnchored(n.DisplayName(), sx, sy+sr+4, 0.5, 0)
		}
	}

	r.drawTempEdge(dc, e)
	return dc.Image(), nil
}

func (r *Renderer) drawSelfLoop(dc *gg.Context, e *engine.Engine, i int, opacity float64) {
	snap := e.Snapshot()
	edge := snap.Edges[i]
	n := snap.Nodes[edge.SourceIdx]
	cam := e.Camera()
	loop := geometry.SelfLoopAt(geometry.Point{X: n.X, Y: n.Y}, e.Params().NodeRadius, edge.ParallelIndex)
	cx, cy := cam.WorldToScreen(loop.Center.X, loop.Center.Y)
	setHexAlpha(dc, scene.EdgeColor, opacity)
	dc.SetLineWidth(1)
	dc.DrawCircle(cx, cy, loop.Radius*cam.Scale)
	dc.Stroke()
}

func (r *Renderer) drawArrowhead(dc *gg.Context, sp geometry.Path, opacity float64) {
	tip := sp.End
	t := sp.TangentAt(1)
	bx, by := tip.X-t.X*arrowLength, tip.Y-t.Y*arrowLength
	px, py := -t.Y, t.X
	setHexAlpha(dc, scene.EdgeColor, opacity)
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(bx+px*arrowWidth, by+py*arrowWidth)
	dc.LineTo(bx-px*arrowWidth, by-py*arrowWidth)
	dc.ClosePath()
	dc.Fill()
}

func (r *Renderer) drawParticles(dc *gg.Context, sp geometry.Path, clock float64) {
	dc.SetHexColor(scene.HighlightStroke)
	for k := 0; k < particleCount; k++ {
		t := math.Mod(clock*particleSpeed+float64(k)/particleCount, 1)
		p := sp.PointAt(t)
		dc.DrawCircle(p.X, p.Y, 2)
		dc.Fill()
	}
}

func (r *Renderer) drawTempEdge(dc *gg.Context, e *engine.Engine) {
	tmp := e.TempEdge()
	if tmp == nil {
		return
	}
	src := e.Snapshot().NodeByID(tmp.FromID)
	if src == nil {
		return
	}
	cam := e.Camera()
	sx, sy := cam.WorldToScreen(src.X, src.Y)
	tx, ty := cam.WorldToScreen(tmp.ToX, tmp.ToY)
	dc.SetHexColor(tempEdgeColor)
	dc.SetLineWidth(1.5)
	dc.SetDash(4, 4)
	dc.DrawLine(sx, sy, tx, ty)
	dc.Stroke()
	dc.SetDash()
	if tgt := e.Snapshot().NodeByID(tmp.TargetID); tgt != nil {
		gx, gy := cam.WorldToScreen(tgt.X, tgt.Y)
		dc.DrawCircle(gx, gy, e.Params().NodeRadius*cam.Scale+4)
		dc.Stroke()
	}
}

// screenPath maps a world-space path through the camera. The viewport
// transform is affine, so transforming the three defining points transforms
// the whole quadratic.
func screenPath(p geometry.Path, cam *scene.Camera2D) geometry.Path {
	out := geometry.Path{}
	out.Start.X, out.Start.Y = cam.WorldToScreen(p.Start.X, p.Start.Y)
	out.End.X, out.End.Y = cam.WorldToScreen(p.End.X, p.End.Y)
	if p.Control != nil {
		cp := geometry.Point{}
		cp.X, cp.Y = cam.WorldToScreen(p.Control.X, p.Control.Y)
		out.Control = &cp
	}
	return out
}

// setHexAlpha sets the draw color from a #rrggbb string with an opacity.
func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	var cr, cg, cb int
	fmt.Sscanf(hex, "#%02x%02x%02x", &cr, &cg, &cb)
	dc.SetRGBA(float64(cr)/255, float64(cg)/255, float64(cb)/255, alpha)
}
