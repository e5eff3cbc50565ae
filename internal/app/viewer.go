// Package app hosts the interactive viewer window: it pumps ebiten input
// into the interaction controller, steps the engine once per frame, and
// blits whichever renderer back end is active. The engine stays pure; this
// package is where the pixels and pointer hardware live.
package app

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/recera/graphlens/pkg/engine"
	"github.com/recera/graphlens/pkg/graph"
	"github.com/recera/graphlens/pkg/interact"
	"github.com/recera/graphlens/pkg/render"
	"github.com/recera/graphlens/pkg/render/canvas2d"
	"github.com/recera/graphlens/pkg/render/scene3d"
	"github.com/recera/graphlens/pkg/scene"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	fitPadding    = 60.0

	// Spring tuning for the camera fit animation.
	springFrequency = 5.0
	springDamping   = 0.9
)

// Options configures the viewer window.
type Options struct {
	Use3D     bool
	Snapshots <-chan *graph.Snapshot
}

// Viewer is the ebiten Game driving one engine instance.
type Viewer struct {
	eng  *engine.Engine
	ctrl *interact.Controller

	r2     *canvas2d.Renderer
	r3     *scene3d.Renderer
	use3D  bool
	active render.Renderer

	snapshots <-chan *graph.Snapshot

	width, height int

	// Camera fit animation state.
	spring    harmonica.Spring
	fitting   bool
	fitTarget scene.FitTarget
	velScale  float64
	velOffX   float64
	velOffY   float64

	// 3D orbit drag state.
	orbiting       bool
	lastMX, lastMY int

	frame *ebiten.Image
}

// NewViewer creates the viewer around an engine.
func NewViewer(eng *engine.Engine, opts Options) (*Viewer, error) {
	r2, err := canvas2d.New()
	if err != nil {
		return nil, err
	}
	r3, err := scene3d.New()
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		eng:       eng,
		ctrl:      interact.New(eng),
		r2:        r2,
		r3:        r3,
		use3D:     opts.Use3D,
		snapshots: opts.Snapshots,
		width:     defaultWidth,
		height:    defaultHeight,
		spring:    harmonica.NewSpring(harmonica.FPS(60), springFrequency, springDamping),
	}
	v.active = v.r2
	if v.use3D {
		v.active = v.r3
	}
	return v, nil
}

// Run opens the window and blocks until it closes.
func (v *Viewer) Run(title string) error {
	if title == "" {
		title = "graphlens"
	}
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("viewer exited: %w", err)
	}
	return nil
}

// Update implements ebiten.Game: one physics step and one input pass per
// frame.
func (v *Viewer) Update() error {
	v.drainSnapshots()
	v.handleKeys()
	if v.use3D {
		v.handleInput3D()
	} else {
		v.handleInput2D()
	}

	v.eng.Step(1.0 / 60.0)

	if v.eng.ConsumeAutoFit() {
		v.startFit()
	}
	v.animateFit()
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	img, err := v.active.Render(v.eng, v.width, v.height)
	if err != nil {
		return
	}
	v.frame = ebiten.NewImageFromImage(img)
	screen.DrawImage(v.frame, nil)
	v.eng.ClearVisualDirty()
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (v *Viewer) drainSnapshots() {
	if v.snapshots == nil {
		return
	}
	for {
		select {
		case snap := <-v.snapshots:
			v.eng.SetSnapshot(snap)
		default:
			return
		}
	}
}

func (v *Viewer) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.startFit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cam := v.eng.Camera()
		cam.Apply(scene.FitTarget{Scale: 1})
		v.fitting = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.use3D = !v.use3D
		v.active = v.r2
		if v.use3D {
			v.active = v.r3
		}
	}
}

func (v *Viewer) handleInput2D() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if _, wy := ebiten.Wheel(); wy != 0 {
		v.ctrl.Wheel(-wy*100, sx, sy)
		v.fitting = false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.ctrl.PointerDown(sx, sy, shift)
		v.fitting = false
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.ctrl.PointerMove(sx, sy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.ctrl.PointerUp()
	}
}

func (v *Viewer) handleInput3D() {
	mx, my := ebiten.CursorPosition()
	cam := v.eng.Camera3D()

	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Dolly(-wy * 40)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.orbiting = true
		v.lastMX, v.lastMY = mx, my
	}
	if v.orbiting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cam.Orbit(float64(mx-v.lastMX)*0.01, float64(my-v.lastMY)*0.01)
		v.lastMX, v.lastMY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.orbiting = false
	}
}

func (v *Viewer) startFit() {
	if v.eng.Empty() {
		return
	}
	v.fitTarget = scene.FitToNodes(v.eng.Snapshot().Nodes, float64(v.width), float64(v.height), fitPadding)
	v.fitting = true
	v.velScale, v.velOffX, v.velOffY = 0, 0, 0
}

// animateFit eases the camera toward the fit target with a damped spring
// instead of snapping, so refits during live editing aren't jarring.
func (v *Viewer) animateFit() {
	if !v.fitting {
		return
	}
	cam := v.eng.Camera()
	cam.Scale, v.velScale = v.spring.Update(cam.Scale, v.velScale, v.fitTarget.Scale)
	cam.OffsetX, v.velOffX = v.spring.Update(cam.OffsetX, v.velOffX, v.fitTarget.OffsetX)
	cam.OffsetY, v.velOffY = v.spring.Update(cam.OffsetY, v.velOffY, v.fitTarget.OffsetY)

	if math.Abs(cam.Scale-v.fitTarget.Scale) < 1e-3 &&
		math.Abs(cam.OffsetX-v.fitTarget.OffsetX) < 0.5 &&
		math.Abs(cam.OffsetY-v.fitTarget.OffsetY) < 0.5 {
		cam.Apply(v.fitTarget)
		v.fitting = false
	}
}
