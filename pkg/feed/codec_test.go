package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/graphlens/pkg/graph"
)

func TestSnapshotEnvelopeRoundTrip(t *testing.T) {
	snap := &graph.Snapshot{
		Nodes: []*graph.Node{
			{ID: "a", Name: "Alice", Type: "Person"},
			{ID: "b", Name: "Acme", Type: "Company"},
		},
		Edges: []*graph.Edge{
			{Source: "a", Target: "b", Type: "WORKS_AT", UUID: "e-1"},
		},
	}

	data, err := EncodeSnapshot(snap)
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgSnapshot, env.Type)

	got, err := DecodeSnapshot(env)
	require.NoError(t, err)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "Alice", got.Nodes[0].Name)
	require.Len(t, got.Edges, 1)
	assert.Equal(t, "e-1", got.Edges[0].UUID)
}

func TestCreateEdgeEnvelopeRoundTrip(t *testing.T) {
	req := CreateEdgeRequest{RequestID: "r-1", SourceID: "a", TargetID: "b"}

	data, err := EncodeCreateEdge(req)
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgCreateEdge, env.Type)

	got, err := DecodeCreateEdge(env)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestDecodeRejectsMismatchedTypes(t *testing.T) {
	data, err := EncodeCreateEdge(CreateEdgeRequest{SourceID: "a", TargetID: "b"})
	require.NoError(t, err)
	env, err := Decode(data)
	require.NoError(t, err)

	_, err = DecodeSnapshot(env)
	assert.Error(t, err)

	snapData, err := EncodeSnapshot(&graph.Snapshot{})
	require.NoError(t, err)
	snapEnv, err := Decode(snapData)
	require.NoError(t, err)
	_, err = DecodeCreateEdge(snapEnv)
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}
