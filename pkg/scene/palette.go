// Package scene derives per-frame visual state from the engine's data:
// color assignment, highlight dimming, label fade and camera transforms. It
// owns nothing the simulator owns; everything here is recomputable.
package scene

import "github.com/recera/graphlens/pkg/graph"

// paletteCycle is the fixed color wheel node types rotate through. Types are
// assigned in first-seen order over the node slice, so assignment is
// deterministic for a given snapshot.
var paletteCycle = []string{
	"#6ea8fe", // blue
	"#f59f00", // amber
	"#51cf66", // green
	"#ff6b6b", // red
	"#cc5de8", // grape
	"#22b8cf", // cyan
	"#ffd43b", // yellow
	"#ff922b", // orange
	"#94d82d", // lime
	"#845ef7", // violet
}

// EdgeColor is the default stroke for edges.
const EdgeColor = "#39424e"

// HighlightStroke outlines highlighted nodes.
const HighlightStroke = "#ffcf33"

// Palette assigns stable colors to node type buckets.
type Palette struct {
	byKey map[string]string
	next  int
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{byKey: make(map[string]string)}
}

// Assign walks the node slice in order and fixes a color for every type
// bucket not yet seen. Calling it again with the same slice is a no-op.
func (p *Palette) Assign(nodes []*graph.Node) {
	for _, n := range nodes {
		key := n.ColorKey()
		if _, ok := p.byKey[key]; !ok {
			p.byKey[key] = paletteCycle[p.next%len(paletteCycle)]
			p.next++
		}
	}
}

// ColorFor returns the color for a type bucket, assigning one on first use.
func (p *Palette) ColorFor(key string) string {
	if c, ok := p.byKey[key]; ok {
		return c
	}
	c := paletteCycle[p.next%len(paletteCycle)]
	p.byKey[key] = c
	p.next++
	return c
}
