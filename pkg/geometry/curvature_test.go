package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/graphlens/pkg/graph"
)

func edge(src, tgt string) *graph.Edge {
	return &graph.Edge{Source: src, Target: tgt, Type: "RELATES_TO"}
}

func TestPairKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
	assert.NotEqual(t, PairKey("a", "b"), PairKey("a", "c"))
}

func TestCurvatureSymmetricAboutZero(t *testing.T) {
	for _, count := range []int{1, 2, 3, 4, 5, 7, 8} {
		sum := 0.0
		zeros := 0
		for i := 0; i < count; i++ {
			c := Curvature(i, count, 50, false)
			sum += c
			if c == 0 {
				zeros++
			}
		}
		assert.InDelta(t, 0, sum, 1e-9, "count=%d", count)
		if count%2 == 1 {
			assert.Equal(t, 1, zeros, "odd group must have exactly one straight edge, count=%d", count)
		} else if count > 1 {
			assert.Zero(t, zeros, "even group must have no straight edge, count=%d", count)
		}
	}
}

func TestCurvatureReversalFlipsSign(t *testing.T) {
	c := Curvature(0, 3, 50, false)
	r := Curvature(0, 3, 50, true)
	require.NotZero(t, c)
	assert.Equal(t, -c, r)
}

func TestCurvatureSingleEdgeStraight(t *testing.T) {
	assert.Zero(t, Curvature(0, 1, 50, false))
	assert.Zero(t, Curvature(0, 1, 50, true))
}

func TestResolveParallelTrio(t *testing.T) {
	// A->B, B->A, A->B submitted in that order: one unordered group of
	// three with distinct curvatures, exactly one of them straight, and the
	// reversed edge's sign flipped relative to its canonical-frame offset.
	edges := []*graph.Edge{edge("a", "b"), edge("b", "a"), edge("a", "b")}
	Resolve(edges, 50)

	for _, e := range edges {
		assert.Equal(t, PairKey("a", "b"), e.PairKey)
		assert.Equal(t, 3, e.ParallelCount)
	}
	assert.False(t, edges[0].Reversed)
	assert.True(t, edges[1].Reversed)
	assert.False(t, edges[2].Reversed)

	seen := map[float64]bool{}
	zeros := 0
	sum := 0.0
	for _, e := range edges {
		assert.False(t, seen[e.Curvature], "curvatures must be distinct")
		seen[e.Curvature] = true
		sum += e.Curvature
		if e.Curvature == 0 {
			zeros++
		}
	}
	assert.Equal(t, 1, zeros)
	assert.InDelta(t, 0, sum, 1e-9)

	// An opposite-direction pair: the stored curvatures are expressed in
	// each edge's own frame, so the reversed edge carries the flipped sign
	// and the two bow to opposite screen sides in canonical terms.
	pair := []*graph.Edge{edge("a", "b"), edge("b", "a")}
	Resolve(pair, 50)
	canonical0 := pair[0].Curvature
	canonical1 := -pair[1].Curvature // undo the reversal flip
	assert.InDelta(t, 0, canonical0+canonical1, 1e-9)
	assert.NotZero(t, canonical0)
}

func TestResolveDeterministic(t *testing.T) {
	build := func() []*graph.Edge {
		return []*graph.Edge{
			edge("a", "b"), edge("b", "a"), edge("a", "b"),
			edge("c", "d"), edge("d", "c"),
			edge("a", "c"),
		}
	}
	first := build()
	Resolve(first, 50)
	second := build()
	Resolve(second, 50)
	for i := range first {
		assert.Equal(t, first[i].Curvature, second[i].Curvature, "edge %d", i)
		assert.Equal(t, first[i].ParallelIndex, second[i].ParallelIndex, "edge %d", i)
	}

	// Resolving the same slice again must be idempotent.
	Resolve(first, 50)
	for i := range first {
		assert.Equal(t, second[i].Curvature, first[i].Curvature, "edge %d", i)
	}
}

func TestResolveSelfLoop(t *testing.T) {
	edges := []*graph.Edge{edge("a", "a"), edge("a", "a")}
	Resolve(edges, 50)
	for i, e := range edges {
		assert.Zero(t, e.Curvature)
		assert.Equal(t, i, e.ParallelIndex)
	}
}

func TestCurvatureScalesWithSpacing(t *testing.T) {
	small := Curvature(0, 2, 25, false)
	large := Curvature(0, 2, 50, false)
	assert.InDelta(t, 2, large/small, 1e-9)
	assert.Less(t, math.Abs(large), 1.0, "curvature must stay in a bounded range")
}
