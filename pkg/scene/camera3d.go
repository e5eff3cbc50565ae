package scene

import (
	"math"

	"github.com/recera/graphlens/pkg/graph"
)

// Camera3D is a simple perspective camera looking down +Z from a dolly
// distance, sufficient for orbit/zoom over a force layout. The 3D back end
// reads it every frame; label fading keys off DistanceTo rather than any 2D
// zoom scale.
type Camera3D struct {
	// Distance from the origin along -Z before orbit rotation.
	Distance float64
	// Orbit angles in radians.
	Yaw, Pitch float64
	// Focal length in screen pixels.
	Focal float64
}

// NewCamera3D returns a camera framing the default layout extents.
func NewCamera3D() *Camera3D {
	return &Camera3D{Distance: 600, Focal: 500}
}

// Dolly moves the camera along its view axis, clamped to stay in front of
// the scene.
func (c *Camera3D) Dolly(delta float64) {
	c.Distance = math.Max(50, c.Distance+delta)
}

// Orbit rotates the camera around the origin.
func (c *Camera3D) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-math.Pi/2+0.01, math.Min(math.Pi/2-0.01, c.Pitch+dpitch))
}

// eye returns the camera position in world space.
func (c *Camera3D) eye() (float64, float64, float64) {
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	return c.Distance * cp * sy, c.Distance * sp, -c.Distance * cp * cy
}

// view transforms a world point into camera space.
func (c *Camera3D) view(x, y, z float64) (float64, float64, float64) {
	ex, ey, ez := c.eye()
	x, y, z = x-ex, y-ey, z-ez
	// Undo yaw, then pitch.
	cy, sy := math.Cos(-c.Yaw), math.Sin(-c.Yaw)
	x, z = x*cy+z*sy, -x*sy+z*cy
	cp, sp := math.Cos(-c.Pitch), math.Sin(-c.Pitch)
	y, z = y*cp-z*sp, y*sp+z*cp
	return x, y, z
}

// Project maps a world point to screen coordinates for a viewport of the
// given size. The last return is false when the point is behind the camera.
func (c *Camera3D) Project(x, y, z, width, height float64) (float64, float64, float64, bool) {
	vx, vy, vz := c.view(x, y, z)
	if vz < 1 {
		return 0, 0, vz, false
	}
	s := c.Focal / vz
	return width/2 + vx*s, height/2 - vy*s, vz, true
}

// DistanceTo returns the camera distance to a node, driving sprite label
// opacity.
func (c *Camera3D) DistanceTo(n *graph.Node) float64 {
	return c.DistanceToPoint(n.X, n.Y, n.Z)
}

// DistanceToPoint returns the camera distance to a world point.
func (c *Camera3D) DistanceToPoint(x, y, z float64) float64 {
	ex, ey, ez := c.eye()
	dx, dy, dz := x-ex, y-ey, z-ez
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PerspectiveScale returns the on-screen magnification factor at a node's
// depth, used to size circles and labels consistently with projection.
func (c *Camera3D) PerspectiveScale(n *graph.Node) float64 {
	_, _, vz := c.view(n.X, n.Y, n.Z)
	if vz < 1 {
		return 0
	}
	return c.Focal / vz
}
