package layout

import (
	"math"

	"github.com/recera/graphlens/pkg/graph"
)

const (
	alphaMin      = 0.001
	alphaDecay    = 0.0228 // 1 - 0.001^(1/300), ~300 ticks to quiesce
	velocityDecay = 0.6    // velocity retained per tick

	// Charge cutoffs: the minimum avoids singular forces between coincident
	// nodes, the maximum skips far pairs that contribute nothing visible.
	chargeDistMin = 1.0
	chargeDistMax = 600.0

	springStrength = 0.1
	gravityScale   = 1.0 / 2000.0

	// initialRadius seeds a deterministic phyllotaxis spiral so unpositioned
	// nodes never start coincident.
	initialRadius = 10.0
)

// initialAngle is the golden angle between consecutive seeded nodes.
var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulator advances a force-directed layout one tick at a time. It is the
// only component that mutates node positions; everything else reads them.
// Not safe for concurrent use: the render loop drives it one step per frame.
type Simulator struct {
	nodes []*graph.Node
	edges []*graph.Edge

	params      Params
	alpha       float64
	alphaTarget float64
	running     bool

	byID map[string]*graph.Node
}

// New creates a simulator over the given nodes and edges. Nodes without a
// position (0,0,...) are seeded on a deterministic spiral. Edges must already
// be validated (endpoint indices resolved); self-loops are kept but skipped
// by the spring force.
func New(nodes []*graph.Node, edges []*graph.Edge, params Params) *Simulator {
	s := &Simulator{
		nodes:   nodes,
		edges:   edges,
		params:  params.withDefaults(),
		alpha:   1,
		running: true,
		byID:    make(map[string]*graph.Node, len(nodes)),
	}
	for i, n := range nodes {
		s.byID[n.ID] = n
		if n.X == 0 && n.Y == 0 && n.Z == 0 {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			n.X = r * math.Cos(a)
			n.Y = r * math.Sin(a)
			if s.params.Dimensions == 3 {
				n.Z = r * math.Sin(a*0.5)
			}
		}
	}
	return s
}

// Alpha returns the current cooling energy.
func (s *Simulator) Alpha() float64 { return s.alpha }

// Params returns the active parameter set.
func (s *Simulator) Params() Params { return s.params }

// SetParams swaps the live parameter set and reheats so the layout resettles
// under the new forces without discarding current positions.
func (s *Simulator) SetParams(p Params) {
	s.params = p.withDefaults()
	s.Reheat(0.5)
}

// SetParameter updates a single named parameter, reheating on success.
func (s *Simulator) SetParameter(name string, value float64) error {
	if err := s.params.Set(name, value); err != nil {
		return err
	}
	s.Reheat(0.5)
	return nil
}

// Reheat re-injects energy so a cooled simulation resumes ticking. It raises
// alpha to at least the given value; positions and velocities are preserved.
func (s *Simulator) Reheat(alpha float64) {
	if alpha > s.alpha {
		s.alpha = alpha
	}
	s.running = true
}

// SetAlphaTarget sets the floor alpha decays toward. Drag handlers hold a
// small positive target for the drag duration so the layout keeps flowing
// around the pinned node, then drop it back to zero on release.
func (s *Simulator) SetAlphaTarget(t float64) {
	s.alphaTarget = t
	if t > 0 {
		s.running = true
	}
}

// Pin holds a node at a fixed position (drag-hold). The z target is ignored
// in 2D layouts.
func (s *Simulator) Pin(nodeID string, x, y, z float64) {
	n, ok := s.byID[nodeID]
	if !ok {
		return
	}
	n.FX, n.FY, n.FZ = &x, &y, &z
}

// Unpin releases a pinned node so the solver resumes integrating it.
func (s *Simulator) Unpin(nodeID string) {
	if n, ok := s.byID[nodeID]; ok {
		n.FX, n.FY, n.FZ = nil, nil, nil
	}
}

// Stop halts the simulation until the next reheat.
func (s *Simulator) Stop() { s.running = false }

// Step advances the simulation one tick, updating positions in place. It
// returns false once the cooling schedule has quiesced (or Stop was called),
// at which point callers stop scheduling further steps until a reheat.
func (s *Simulator) Step() bool {
	if !s.running || len(s.nodes) == 0 {
		return false
	}
	s.alpha += (s.alphaTarget - s.alpha) * alphaDecay
	if s.alpha < alphaMin && s.alphaTarget < alphaMin {
		s.running = false
		return false
	}

	s.applyCharge()
	s.applySprings()
	s.applyGravity()
	s.applyCollision()
	s.integrate()
	return true
}

func (s *Simulator) applyCharge() {
	for i := 0; i < len(s.nodes); i++ {
		a := s.nodes[i]
		for j := i + 1; j < len(s.nodes); j++ {
			b := s.nodes[j]
			dx, dy, dz := b.X-a.X, b.Y-a.Y, 0.0
			if s.params.Dimensions == 3 {
				dz = b.Z - a.Z
			}
			dist2 := dx*dx + dy*dy + dz*dz
			if dist2 > chargeDistMax*chargeDistMax {
				continue
			}
			if dist2 < chargeDistMin*chargeDistMin {
				// Coincident nodes: deterministic jiggle picks a direction to
				// break the tie, with the magnitude still floored so the
				// force stays finite.
				dx, dy = jiggle(i, j)
				dist2 = chargeDistMin * chargeDistMin
			}
			// Negative charge repels: f flips (fx, fy, fz) from the a->b
			// direction to b->a, pushing the pair apart.
			f := s.params.Charge * s.alpha / dist2
			inv := 1 / math.Sqrt(dist2)
			fx, fy, fz := f*dx*inv, f*dy*inv, f*dz*inv
			a.VX += fx
			a.VY += fy
			b.VX -= fx
			b.VY -= fy
			if s.params.Dimensions == 3 {
				a.VZ += fz
				b.VZ -= fz
			}
		}
	}
}

func (s *Simulator) applySprings() {
	for _, e := range s.edges {
		if e.SelfLoop() {
			// A loop has no direction to pull along.
			continue
		}
		a, b := s.nodes[e.SourceIdx], s.nodes[e.TargetIdx]
		dx, dy, dz := b.X-a.X, b.Y-a.Y, 0.0
		if s.params.Dimensions == 3 {
			dz = b.Z - a.Z
		}
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < 1e-6 {
			continue
		}
		f := springStrength * s.alpha * (dist - s.params.LinkDistance) / dist
		a.VX += f * dx
		a.VY += f * dy
		b.VX -= f * dx
		b.VY -= f * dy
		if s.params.Dimensions == 3 {
			a.VZ += f * dz
			b.VZ -= f * dz
		}
	}
}

func (s *Simulator) applyGravity() {
	g := s.params.Gravity * gravityScale * s.alpha
	if g <= 0 {
		return
	}
	for _, n := range s.nodes {
		n.VX -= n.X * g
		n.VY -= n.Y * g
		if s.params.Dimensions == 3 {
			n.VZ -= n.Z * g
		}
	}
}

func (s *Simulator) applyCollision() {
	minSep := s.params.NodeRadius * 2
	for i := 0; i < len(s.nodes); i++ {
		a := s.nodes[i]
		for j := i + 1; j < len(s.nodes); j++ {
			b := s.nodes[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minSep {
				continue
			}
			if dist < 1e-6 {
				dx, dy = jiggle(i, j)
				dist = math.Hypot(dx, dy)
			}
			push := (minSep - dist) / dist * 0.5
			px, py := dx*push, dy*push
			if !a.Pinned() {
				a.X -= px
				a.Y -= py
			}
			if !b.Pinned() {
				b.X += px
				b.Y += py
			}
		}
	}
}

func (s *Simulator) integrate() {
	for _, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			if s.params.Dimensions == 3 && n.FZ != nil {
				n.Z = *n.FZ
			}
			n.VX, n.VY, n.VZ = 0, 0, 0
			continue
		}
		n.VX *= velocityDecay
		n.VY *= velocityDecay
		n.X += n.VX
		n.Y += n.VY
		if s.params.Dimensions == 3 {
			n.VZ *= velocityDecay
			n.Z += n.VZ
		}
	}
}

// jiggle returns a tiny deterministic displacement for coincident node pairs.
func jiggle(i, j int) (float64, float64) {
	a := float64(i*31+j*17) * 0.1
	return math.Cos(a) * 1e-3, math.Sin(a) * 1e-3
}
