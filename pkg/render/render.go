// Package render defines the back-end-agnostic renderer contract. Both back
// ends consume the same engine state and the same geometry module, so the
// curvature math cannot drift between them.
package render

import (
	"errors"
	"image"

	"github.com/recera/graphlens/pkg/engine"
)

// ErrNoSurface is returned when a renderer is asked to draw into a
// zero-sized or otherwise unusable surface. Hosts surface it as an explicit
// "cannot render" state instead of failing silently.
var ErrNoSurface = errors.New("render: no drawable surface")

// Renderer rasterizes one frame of an engine's state.
type Renderer interface {
	// Render draws the engine's current state into a new image of the given
	// size. Implementations must be cheap enough to call once per animation
	// frame and must not mutate engine state.
	Render(e *engine.Engine, width, height int) (image.Image, error)
}
