// Package scene3d is the 3D back end: a retained sprite scene projected
// through a perspective camera. Label visibility follows camera distance
// rather than 2D zoom, recomputed by walking the sprite arrays every
// animation frame so no reactive state sits between the render loop and the
// labels.
package scene3d

import (
	"fmt"
	"image"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/geometry"
	"github.com/recera/graphlens/pkg/graph"
	"github.com/recera/graphlens/pkg/render"
	"github.com/recera/graphlens/pkg/scene"
)

const (
	backgroundColor = "#07090f"
	labelColor      = "#eaeef3"
	emptyStateText  = "no graph data"
)

// LabelSprite is one billboard label in the scene. Sprites sit in flat
// arrays parallel to the snapshot's nodes and edges; Opacity is mutated in
// place by the per-frame traversal.
type LabelSprite struct {
	Text    string
	Opacity float64
}

// Renderer projects the engine's layout through a Camera3D. Node and edge
// label sprites are rebuilt whenever the snapshot generation changes.
type Renderer struct {
	face font.Face

	nodeLabels []LabelSprite
	edgeLabels []LabelSprite
	lastSnap   *graph.Snapshot // the snapshot the sprite arrays mirror
}

// New creates a 3D renderer with the bundled label font.
func New() (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return &Renderer{
		face: truetype.NewFace(f, &truetype.Options{Size: 12}),
	}, nil
}

// syncSprites rebuilds the sprite arrays when the snapshot was replaced.
func (r *Renderer) syncSprites(e *engine.Engine) {
	snap := e.Snapshot()
	if r.lastSnap == snap {
		return
	}
	r.lastSnap = snap
	r.nodeLabels = make([]LabelSprite, len(snap.Nodes))
	for i, n := range snap.Nodes {
		r.nodeLabels[i] = LabelSprite{Text: n.DisplayName()}
	}
	r.edgeLabels = make([]LabelSprite, len(snap.Edges))
	for i, ed := range snap.Edges {
		r.edgeLabels[i] = LabelSprite{Text: ed.Type}
	}
}

// UpdateLabels walks every sprite and sets its opacity from the camera
// distance to its anchor object. It runs once per animation frame,
// independent of the physics cadence, and touches nothing but the sprite
// array.
func (r *Renderer) UpdateLabels(e *engine.Engine) {
	if e.Empty() {
		return
	}
	r.syncSprites(e)
	snap := e.Snapshot()
	cam := e.Camera3D()
	hl := e.Highlight()
	threshold := e.Params().LabelDistance
	for i, n := range snap.Nodes {
		r.nodeLabels[i].Opacity = scene.DistanceAlpha(cam.DistanceTo(n), threshold, hl.HasNode(n.ID) && !hl.Empty())
	}
	for i, ed := range snap.Edges {
		src, tgt := snap.Nodes[ed.SourceIdx], snap.Nodes[ed.TargetIdx]
		d := cam.DistanceToPoint((src.X+tgt.X)/2, (src.Y+tgt.Y)/2, (src.Z+tgt.Z)/2)
		r.edgeLabels[i].Opacity = scene.DistanceAlpha(d, threshold*0.8, hl.HasEdge(i))
	}
}

type depthItem struct {
	depth float64
	draw  func(dc *gg.Context)
}

// Render implements render.Renderer. Projected elements are painter-sorted
// back to front. Edge curves reuse the shared geometry module on the
// projected endpoints, so 2D and 3D cannot disagree about curvature.
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

	r.UpdateLabels(e)

	snap := e.Snapshot()
	cam := e.Camera3D()
	hl := e.Highlight()
	params := e.Params()
	w, h := float64(width), float64(height)

	items := make([]depthItem, 0, len(snap.Nodes)+len(snap.Edges))

	for i, edge := range snap.Edges {
		if edge.SelfLoop() {
			continue
		}
		src, tgt := snap.Nodes[edge.SourceIdx], snap.Nodes[edge.TargetIdx]
		sx, sy, sd, sok := cam.Project(src.X, src.Y, src.Z, w, h)
		tx, ty, td, tok := cam.Project(tgt.X, tgt.Y, tgt.Z, w, h)
		if !sok || !tok {
			continue
		}
		ps := cam.PerspectiveScale(src)
		path := geometry.EdgePath(
			geometry.Point{X: sx, Y: sy},
			geometry.Point{X: tx, Y: ty},
			edge.Curvature,
			params.NodeRadius*ps,
			engine.ArrowAllowance*ps,
		)
		if path.Degenerate {
			continue
		}
		sprite := r.edgeLabels[i]
		opacity := hl.EdgeOpacity(i)
		items = append(items, depthItem{
			depth: (sd + td) / 2,
			draw: func(dc *gg.Context) {
				setHexAlpha(dc, scene.EdgeColor, opacity)
				dc.SetLineWidth(1)
				dc.MoveTo(path.Start.X, path.Start.Y)
				if path.Control != nil {
					dc.QuadraticTo(path.Control.X, path.Control.Y, path.End.X, path.End.Y)
				} else {
					dc.LineTo(path.End.X, path.End.Y)
				}
				dc.Stroke()
				if sprite.Opacity > 0 && sprite.Text != "" {
					lp := path.LabelPoint()
					setHexAlpha(dc, labelColor, sprite.Opacity*opacity)
					dc.DrawStringAnchored(sprite.Text, lp.X, lp.Y-3, 0.5, 1)
				}
			},
		})
	}

	for i, n := range snap.Nodes {
		sx, sy, depth, ok := cam.Project(n.X, n.Y, n.Z, w, h)
		if !ok {
			continue
		}
		radius := params.NodeRadius * cam.PerspectiveScale(n)
		color := e.Palette().ColorFor(n.ColorKey())
		opacity := hl.NodeOpacity(n.ID)
		highlighted := hl.HasNode(n.ID) && !hl.Empty()
		sprite := r.nodeLabels[i]
		items = append(items, depthItem{
			depth: depth,
			draw: func(dc *gg.Context) {
				setHexAlpha(dc, color, opacity)
				dc.DrawCircle(sx, sy, radius)
				dc.Fill()
				if highlighted {
					dc.SetHexColor(scene.HighlightStroke)
					dc.SetLineWidth(2)
					dc.DrawCircle(sx, sy, radius+3)
					dc.Stroke()
				}
				if sprite.Opacity > 0 {
					setHexAlpha(dc, labelColor, sprite.Opacity*opacity)
					dc.DrawStringAnchored(sprite.Text, sx, sy+radius+3, 0.5, 0)
				}
			},
		})
	}

	sort.Slice(items, func(a, b int) bool { return items[a].depth > items[b].depth })
	for _, it := range items {
		it.draw(dc)
	}
	return dc.Image(), nil
}

// NodeLabels exposes the sprite array for tests and hosts that inspect
// label visibility.
func (r *Renderer) NodeLabels() []LabelSprite { return r.nodeLabels }

// EdgeLabels exposes the edge sprite array.
func (r *Renderer) EdgeLabels() []LabelSprite { return r.edgeLabels }

func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	var cr, cg, cb int
	fmt.Sscanf(hex, "#%02x%02x%02x", &cr, &cg, &cb)
	dc.SetRGBA(float64(cr)/255, float64(cg)/255, float64(cb)/255, alpha)
}
