package graph

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wireSample = `{
	"nodes": [
		{"id": "n1", "name": "Alice", "type": "Person", "labels": ["Entity"]},
		{"id": "n2", "name": "Acme", "type": "Company", "attributes": {"founded": 1999}}
	],
	"edges": [
		{"source": "n1", "target": "n2", "type": "WORKS_AT", "fact": "Alice works at Acme", "uuid": "e-1", "episodes": ["ep-1"]},
		{"source": "n2", "target": "n1", "type": "EMPLOYS"}
	]
}`

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(wireSample))
	require.NoError(t, err)

	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, "Alice", snap.Nodes[0].Name)
	assert.Equal(t, "Person", snap.Nodes[0].Type)
	assert.Equal(t, []string{"Entity"}, snap.Nodes[0].Labels)
	assert.EqualValues(t, 1999, snap.Nodes[1].Attributes["founded"])

	require.Len(t, snap.Edges, 2)
	assert.Equal(t, "e-1", snap.Edges[0].UUID)
	assert.Equal(t, []string{"ep-1"}, snap.Edges[0].Episodes)
	// Missing uuids are filled so every edge is addressable.
	_, err = uuid.Parse(snap.Edges[1].UUID)
	assert.NoError(t, err)
}

func TestParseSnapshotRejectsBadJSON(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"nodes": [`))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	snap, err := ParseSnapshot([]byte(wireSample))
	require.NoError(t, err)
	snap.Nodes[0].X, snap.Nodes[0].VX = 42, 3 // simulation state must not leak

	data, err := MarshalSnapshot(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "42")

	again, err := ParseSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Nodes[0].Name, again.Nodes[0].Name)
	assert.Equal(t, snap.Edges[0].UUID, again.Edges[0].UUID)
	assert.Zero(t, again.Nodes[0].X)
}

func TestValidateDropsDanglingEdges(t *testing.T) {
	snap := &Snapshot{
		Nodes: []*Node{{ID: "a"}, {ID: "b"}},
		Edges: []*Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "missing"},
			{Source: "nope", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}
	dropped := snap.Validate()

	assert.Equal(t, 2, dropped)
	require.Len(t, snap.Edges, 2)
	assert.Equal(t, 0, snap.Edges[0].SourceIdx)
	assert.Equal(t, 1, snap.Edges[0].TargetIdx)
	assert.Equal(t, 1, snap.Edges[1].SourceIdx)
	assert.Equal(t, 0, snap.Edges[1].TargetIdx)
}

func TestNodeByID(t *testing.T) {
	snap := &Snapshot{Nodes: []*Node{{ID: "a"}, {ID: "b"}}}
	require.NotNil(t, snap.NodeByID("b"))
	assert.Equal(t, "b", snap.NodeByID("b").ID)
	assert.Nil(t, snap.NodeByID("zz"))
}

func TestFingerprintStableUnderReordering(t *testing.T) {
	a := &Snapshot{Nodes: []*Node{{ID: "x"}, {ID: "y"}, {ID: "z"}}}
	b := &Snapshot{Nodes: []*Node{{ID: "z"}, {ID: "x"}, {ID: "y"}}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	// Positions and edges do not participate.
	a.Nodes[0].X = 500
	a.Edges = []*Edge{{Source: "x", Target: "y"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := &Snapshot{Nodes: []*Node{{ID: "x"}, {ID: "y"}}}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestFingerprintSamplesLargeGraphs(t *testing.T) {
	big := &Snapshot{}
	for i := 0; i < 500; i++ {
		big.Nodes = append(big.Nodes, &Node{ID: nodeID(i)})
	}
	fp := big.Fingerprint()
	assert.Equal(t, fp, big.Fingerprint(), "fingerprint is deterministic")
	assert.NotZero(t, fp)
}

func nodeID(i int) string {
	return fmt.Sprintf("node-%03d", i)
}

func TestDisplayNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "Alice", (&Node{ID: "n1", Name: "Alice"}).DisplayName())
	assert.Equal(t, "n1", (&Node{ID: "n1"}).DisplayName())
}

func TestPinnedAndSelfLoop(t *testing.T) {
	n := &Node{}
	assert.False(t, n.Pinned())
	x := 1.0
	n.FX, n.FY = &x, &x
	assert.True(t, n.Pinned())

	assert.True(t, (&Edge{Source: "a", Target: "a"}).SelfLoop())
	assert.False(t, (&Edge{Source: "a", Target: "b"}).SelfLoop())
}
