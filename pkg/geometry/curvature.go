// Package geometry resolves the screen-space shape of edges: grouping of
// parallel edges sharing an endpoint pair, signed curvature assignment, and
// the quadratic control-point math shared by every renderer back end.
package geometry

import "github.com/recera/graphlens/pkg/graph"

// pairSep joins the two node ids of a pair key. Unit separator keeps ids
// containing punctuation unambiguous.
const pairSep = "\x1f"

// curvatureScale maps the user-facing curve spacing parameter (pixel-ish,
// default 50) onto the dimensionless curvature unit between adjacent
// parallel edges. 50/250 = 0.2 keeps a five-edge fan inside ±0.4.
const curvatureScale = 250.0

// PairKey returns the canonical identifier for the unordered endpoint pair,
// independent of edge direction.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSep + b
}

// ReversedOrder reports whether the declared source/target order opposes the
// canonical sort order of the pair.
func ReversedOrder(source, target string) bool {
	return target < source
}

// Curvature computes the signed curvature for one edge of a parallel group.
// index is the edge's position among the count edges sharing a pair key, in
// input order. Offsets fan symmetrically around the group middle, so for odd
// counts exactly the middle edge is straight and the group sums to zero.
// reversed flips the sign so that an edge declared against the canonical pair
// order bows to the opposite side regardless of insertion order: the
// curvature is expressed in the edge's own source->target frame, and the
// perpendicular flips with the direction.
func Curvature(index, count int, spacing float64, reversed bool) float64 {
	if count <= 1 {
		return 0
	}
	unit := spacing / curvatureScale
	c := unit * (float64(index) - float64(count-1)/2)
	if reversed {
		c = -c
	}
	return c
}

// Resolve assigns PairKey, ParallelIndex, ParallelCount, Reversed and
// Curvature to every edge in place. Assignment is deterministic in the input
// order of the edge slice; resolving an unchanged snapshot twice yields
// identical values. Self-loops form their own single-node pair and keep
// curvature 0 (they are drawn as anchored loops, not quadratics).
func Resolve(edges []*graph.Edge, spacing float64) {
	groups := make(map[string][]*graph.Edge, len(edges))
	order := make([]string, 0, len(edges))
	for _, e := range edges {
		key := PairKey(e.Source, e.Target)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}
	// Iterate first-seen key order, not map order, for determinism.
	for _, key := range order {
		group := groups[key]
		for i, e := range group {
			e.PairKey = key
			e.ParallelIndex = i
			e.ParallelCount = len(group)
			e.Reversed = ReversedOrder(e.Source, e.Target)
			if e.SelfLoop() {
				e.Curvature = 0
				continue
			}
			e.Curvature = Curvature(i, len(group), spacing, e.Reversed)
		}
	}
}
