// Package feed moves graph snapshots between a host process and viewers
// over websockets: snapshots flow downstream, edge-creation requests flow
// back up. The engine itself never touches this package; hosts bridge the
// two.
package feed

import "encoding/json"

// MessageType discriminates feed envelopes.
type MessageType string

const (
	// MsgSnapshot carries a full {nodes, edges} snapshot downstream.
	MsgSnapshot MessageType = "snapshot"
	// MsgCreateEdge carries an edge-creation request upstream.
	MsgCreateEdge MessageType = "create_edge"
)

// Envelope is the wire framing for every feed message.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CreateEdgeRequest asks the host to create a directed edge. RequestID lets
// the host correlate the eventual snapshot update with the gesture that
// asked for it.
type CreateEdgeRequest struct {
	RequestID string `json:"requestId"`
	SourceID  string `json:"sourceId"`
	TargetID  string `json:"targetId"`
}
