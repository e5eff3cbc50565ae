package geometry

import "math"

// Epsilon is the minimum segment length treated as non-degenerate. Distance
// formulas guard on it to avoid division by zero when endpoints coincide.
const Epsilon = 1e-6

// Point is a 2D point in world coordinates.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Hypot(dx, dy)
}

// Path is the drawable form of one edge: a straight segment when Control is
// nil, otherwise a quadratic curve through the control point. The same path
// feeds both the stroke and the label placement so the two cannot drift.
type Path struct {
	Start, End Point
	Control    *Point
	Degenerate bool
}

// ControlPoint returns the quadratic control point for a curved edge: the
// segment midpoint displaced along the segment's perpendicular by
// curvature * segment length. Positive curvature displaces to the left of
// the start->end direction.
func ControlPoint(start, end Point, curvature float64) Point {
	mx, my := (start.X+end.X)/2, (start.Y+end.Y)/2
	dx, dy := end.X-start.X, end.Y-start.Y
	// Perpendicular (-dy, dx); length factors cancel since the displacement
	// is curvature * |segment| along the unit perpendicular.
	return Point{mx - dy*curvature, my + dx*curvature}
}

// EdgePath builds the drawable path between two node centers, insetting both
// endpoints by the node radius (plus arrowAllowance at the target so the
// arrowhead clears the circle). Radii are live parameters, so callers rebuild
// paths every frame. A segment shorter than the combined insets is marked
// degenerate and should be skipped for this frame.
func EdgePath(source, target Point, curvature, radius, arrowAllowance float64) Path {
	length := source.Dist(target)
	if length < Epsilon {
		return Path{Start: source, End: target, Degenerate: true}
	}
	ux, uy := (target.X-source.X)/length, (target.Y-source.Y)/length
	startInset := radius
	endInset := radius + arrowAllowance
	if startInset+endInset >= length {
		return Path{Start: source, End: target, Degenerate: true}
	}
	start := Point{source.X + ux*startInset, source.Y + uy*startInset}
	end := Point{target.X - ux*endInset, target.Y - uy*endInset}
	p := Path{Start: start, End: end}
	if curvature != 0 {
		cp := ControlPoint(start, end, curvature)
		p.Control = &cp
	}
	return p
}

// PointAt evaluates the path at parameter t in [0,1]. For curved paths this
// is the quadratic Bezier through the control point.
func (p Path) PointAt(t float64) Point {
	if p.Control == nil {
		return Point{
			p.Start.X + (p.End.X-p.Start.X)*t,
			p.Start.Y + (p.End.Y-p.Start.Y)*t,
		}
	}
	u := 1 - t
	return Point{
		u*u*p.Start.X + 2*u*t*p.Control.X + t*t*p.End.X,
		u*u*p.Start.Y + 2*u*t*p.Control.Y + t*t*p.End.Y,
	}
}

// LabelPoint returns where the edge label belongs: the midpoint of the drawn
// path. It reuses PointAt so the label sits exactly on the stroked curve.
func (p Path) LabelPoint() Point { return p.PointAt(0.5) }

// TangentAt returns the unit tangent of the path at parameter t, used to
// orient arrowheads and directional particles. Degenerate tangents fall back
// to +X.
func (p Path) TangentAt(t float64) Point {
	var dx, dy float64
	if p.Control == nil {
		dx, dy = p.End.X-p.Start.X, p.End.Y-p.Start.Y
	} else {
		u := 1 - t
		dx = 2*u*(p.Control.X-p.Start.X) + 2*t*(p.End.X-p.Control.X)
		dy = 2*u*(p.Control.Y-p.Start.Y) + 2*t*(p.End.Y-p.Control.Y)
	}
	l := math.Hypot(dx, dy)
	if l < Epsilon {
		return Point{1, 0}
	}
	return Point{dx / l, dy / l}
}

// DistanceTo returns the shortest distance from q to the path, approximated
// by sampling. Sixteen segments are plenty for pointer hit-testing against a
// few-pixel pick radius.
func (p Path) DistanceTo(q Point) float64 {
	const samples = 16
	best := math.Inf(1)
	prev := p.PointAt(0)
	for i := 1; i <= samples; i++ {
		next := p.PointAt(float64(i) / samples)
		if d := segmentDistance(q, prev, next); d < best {
			best = d
		}
		prev = next
	}
	return best
}

// SelfLoop describes the fixed-radius loop drawn for a self-referencing
// edge, anchored at the node boundary. Parallel self-loops spread around the
// node by their parallel index.
type SelfLoop struct {
	Center Point
	Radius float64
}

// SelfLoopAt places the loop for the parallel-indexed self edge of a node
// with the given rendered radius.
func SelfLoopAt(node Point, nodeRadius float64, parallelIndex int) SelfLoop {
	angle := math.Pi/4 + float64(parallelIndex)*math.Pi/2
	r := nodeRadius * 1.5
	return SelfLoop{
		Center: Point{node.X + math.Cos(angle)*(nodeRadius+r*0.7), node.Y + math.Sin(angle)*(nodeRadius+r*0.7)},
		Radius: r,
	}
}

func segmentDistance(q, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 < Epsilon {
		return q.Dist(a)
	}
	t := ((q.X-a.X)*abx + (q.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return q.Dist(Point{a.X + abx*t, a.Y + aby*t})
}
