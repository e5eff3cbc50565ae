// Package layout implements the force-directed layout simulator: an
// iterative solver combining charge repulsion, link springs, axis gravity and
// collision separation under an alpha cooling schedule that quiesces once the
// system settles and can be reheated without discarding positions.
package layout

import "fmt"

// Params holds every live-tunable layout and visual-encoding parameter. The
// engine forwards changes to the simulator without resetting positions; the
// host application owns persistence across sessions.
type Params struct {
	// Physics
	LinkDistance float64 `yaml:"linkDistance"` // spring rest length, default 150
	Charge       float64 `yaml:"charge"`       // repulsion strength, negative repels, default -800
	Gravity      float64 `yaml:"gravity"`      // centering strength 0..200, default 100
	NodeRadius   float64 `yaml:"nodeRadius"`   // rendered and collision radius, default 12

	// Geometry
	CurveSpacing float64 `yaml:"curveSpacing"` // parallel-edge fan spacing, default 50

	// Label visibility
	NodeLabelZoom float64 `yaml:"nodeLabelZoom"` // 2D zoom threshold, default 1.5
	EdgeLabelZoom float64 `yaml:"edgeLabelZoom"` // 2D zoom threshold, default 2.5
	LabelDistance float64 `yaml:"labelDistance"` // 3D camera-distance threshold, default 400

	// Dimensions is 2 or 3.
	Dimensions int `yaml:"dimensions"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		LinkDistance:  150,
		Charge:        -800,
		Gravity:       100,
		NodeRadius:    12,
		CurveSpacing:  50,
		NodeLabelZoom: 1.5,
		EdgeLabelZoom: 2.5,
		LabelDistance: 400,
		Dimensions:    2,
	}
}

// withDefaults fills zero-valued fields whose zero would be degenerate, so
// partially specified parameter sets (live updates, hand-built structs)
// behave. Gravity is exempt: zero is inside its documented range and means
// the centering force is off.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	d.Gravity = p.Gravity
	if p.LinkDistance != 0 {
		d.LinkDistance = p.LinkDistance
	}
	if p.Charge != 0 {
		d.Charge = p.Charge
	}
	if p.NodeRadius != 0 {
		d.NodeRadius = p.NodeRadius
	}
	if p.CurveSpacing != 0 {
		d.CurveSpacing = p.CurveSpacing
	}
	if p.NodeLabelZoom != 0 {
		d.NodeLabelZoom = p.NodeLabelZoom
	}
	if p.EdgeLabelZoom != 0 {
		d.EdgeLabelZoom = p.EdgeLabelZoom
	}
	if p.LabelDistance != 0 {
		d.LabelDistance = p.LabelDistance
	}
	if p.Dimensions == 3 {
		d.Dimensions = 3
	}
	return d
}

// Set updates a parameter by its wire name. Unknown names are an error so
// hosts can surface typos instead of silently dropping a tuning change.
func (p *Params) Set(name string, value float64) error {
	switch name {
	case "linkDistance":
		p.LinkDistance = value
	case "charge":
		p.Charge = value
	case "gravity":
		p.Gravity = value
	case "nodeRadius":
		p.NodeRadius = value
	case "curveSpacing":
		p.CurveSpacing = value
	case "nodeLabelZoom":
		p.NodeLabelZoom = value
	case "edgeLabelZoom":
		p.EdgeLabelZoom = value
	case "labelDistance":
		p.LabelDistance = value
	default:
		return fmt.Errorf("unknown layout parameter %q", name)
	}
	return nil
}
