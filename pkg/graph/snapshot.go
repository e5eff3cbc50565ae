package graph

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// debugLog is set by the host to observe dropped elements and other
// recoverable input problems. Nil by default.
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function.
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// fingerprintSample caps how many node ids feed the content fingerprint.
const fingerprintSample = 64

type nodeJSON struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Labels     []string       `json:"labels,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type edgeJSON struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     string   `json:"type"`
	Fact     string   `json:"fact,omitempty"`
	UUID     string   `json:"uuid,omitempty"`
	Episodes []string `json:"episodes,omitempty"`
}

type snapshotJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

// ParseSnapshot decodes the {nodes, edges} wire form produced by the graph
// backend into a Snapshot. It does not validate endpoint references; see
// Validate.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse graph snapshot: %w", err)
	}
	snap := &Snapshot{
		Nodes: make([]*Node, 0, len(raw.Nodes)),
		Edges: make([]*Edge, 0, len(raw.Edges)),
	}
	for _, n := range raw.Nodes {
		snap.Nodes = append(snap.Nodes, &Node{
			ID:         n.ID,
			Name:       n.Name,
			Type:       n.Type,
			Labels:     n.Labels,
			Attributes: n.Attributes,
		})
	}
	for _, e := range raw.Edges {
		id := e.UUID
		if id == "" {
			id = uuid.NewString()
		}
		snap.Edges = append(snap.Edges, &Edge{
			Source:   e.Source,
			Target:   e.Target,
			Type:     e.Type,
			Fact:     e.Fact,
			UUID:     id,
			Episodes: e.Episodes,
		})
	}
	return snap, nil
}

// MarshalSnapshot encodes a snapshot back into the wire form, omitting
// simulation state and derived geometry.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	raw := snapshotJSON{
		Nodes: make([]nodeJSON, 0, len(s.Nodes)),
		Edges: make([]edgeJSON, 0, len(s.Edges)),
	}
	for _, n := range s.Nodes {
		raw.Nodes = append(raw.Nodes, nodeJSON{
			ID: n.ID, Name: n.Name, Type: n.Type,
			Labels: n.Labels, Attributes: n.Attributes,
		})
	}
	for _, e := range s.Edges {
		raw.Edges = append(raw.Edges, edgeJSON{
			Source: e.Source, Target: e.Target, Type: e.Type,
			Fact: e.Fact, UUID: e.UUID, Episodes: e.Episodes,
		})
	}
	return json.Marshal(raw)
}

// Validate resolves edge endpoints against the node set and drops edges that
// reference missing nodes. Dropped edges are reported through the debug hook;
// malformed input must never crash the layout. It returns the number of
// edges dropped.
func (s *Snapshot) Validate() int {
	index := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		index[n.ID] = i
	}
	kept := s.Edges[:0]
	dropped := 0
	for _, e := range s.Edges {
		si, sok := index[e.Source]
		ti, tok := index[e.Target]
		if !sok || !tok {
			dropped++
			if debugLog != nil {
				debugLog("[graph] dropping edge with dangling endpoint:", e.Source, "->", e.Target)
			}
			continue
		}
		e.SourceIdx = si
		e.TargetIdx = ti
		kept = append(kept, e)
	}
	s.Edges = kept
	return dropped
}

// NodeByID returns the node with the given id, or nil.
func (s *Snapshot) NodeByID(id string) *Node {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Fingerprint returns a stable content identity for the node set: the FNV-1a
// hash of a sorted sample of node ids. Renderers use it to run zoom-to-fit
// once per freshly loaded graph instead of on every incremental edit, so the
// sample is deliberately insensitive to edge changes.
func (s *Snapshot) Fingerprint() uint64 {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	sort.Strings(ids)
	if len(ids) > fingerprintSample {
		// Evenly spaced sample keeps the fingerprint cheap on large graphs.
		sampled := make([]string, 0, fingerprintSample)
		stride := float64(len(ids)) / float64(fingerprintSample)
		for i := 0; i < fingerprintSample; i++ {
			sampled = append(sampled, ids[int(float64(i)*stride)])
		}
		ids = sampled
	}
	h := fnv.New64a()
	h.Write([]byte(strings.Join(ids, "\x1f")))
	return h.Sum64()
}
