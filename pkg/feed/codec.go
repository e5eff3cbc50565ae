package feed

import (
	"encoding/json"
	"fmt"

	"github.com/recera/graphlens/pkg/graph"
)

// EncodeSnapshot frames a snapshot for the wire.
func EncodeSnapshot(s *graph.Snapshot) ([]byte, error) {
	payload, err := graph.MarshalSnapshot(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return json.Marshal(Envelope{Type: MsgSnapshot, Payload: payload})
}

// EncodeCreateEdge frames an edge-creation request for the wire.
func EncodeCreateEdge(req CreateEdgeRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create_edge: %w", err)
	}
	return json.Marshal(Envelope{Type: MsgCreateEdge, Payload: payload})
}

// Decode parses a wire message into its envelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to decode feed message: %w", err)
	}
	return env, nil
}

// DecodeSnapshot extracts the snapshot from a MsgSnapshot envelope.
func DecodeSnapshot(env Envelope) (*graph.Snapshot, error) {
	if env.Type != MsgSnapshot {
		return nil, fmt.Errorf("expected %s envelope, got %s", MsgSnapshot, env.Type)
	}
	return graph.ParseSnapshot(env.Payload)
}

// DecodeCreateEdge extracts the request from a MsgCreateEdge envelope.
func DecodeCreateEdge(env Envelope) (CreateEdgeRequest, error) {
	var req CreateEdgeRequest
	if env.Type != MsgCreateEdge {
		return req, fmt.Errorf("expected %s envelope, got %s", MsgCreateEdge, env.Type)
	}
	if err := json.Unmarshal(env.Payload, &req); err != nil {
		return req, fmt.Errorf("failed to decode create_edge payload: %w", err)
	}
	return req, nil
}
