package feed

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/recera/graphlens/pkg/graph"
)

// Client subscribes a viewer to a snapshot feed.
type Client struct {
	conn *websocket.Conn

	// OnSnapshot receives every downstream snapshot. Required.
	OnSnapshot func(*graph.Snapshot)
}

// Dial connects to a feed server at the given websocket URL.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to feed %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Run reads the feed until the connection closes. Call from a goroutine;
// OnSnapshot fires on this goroutine, so hosts hand snapshots to their
// render loop through a channel.
func (c *Client) Run() error {
	defer c.conn.Close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("feed connection closed: %w", err)
		}
		env, err := Decode(data)
		if err != nil {
			log.Printf("[feed] bad message: %v", err)
			continue
		}
		if env.Type != MsgSnapshot {
			continue
		}
		snap, err := DecodeSnapshot(env)
		if err != nil {
			log.Printf("[feed] bad snapshot: %v", err)
			continue
		}
		if c.OnSnapshot != nil {
			c.OnSnapshot(snap)
		}
	}
}

// SendCreateEdge sends an edge-creation request upstream and returns its
// request id.
func (c *Client) SendCreateEdge(sourceID, targetID string) (string, error) {
	req := CreateEdgeRequest{
		RequestID: uuid.NewString(),
		SourceID:  sourceID,
		TargetID:  targetID,
	}
	data, err := EncodeCreateEdge(req)
	if err != nil {
		return "", err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return "", fmt.Errorf("failed to send create_edge: %w", err)
	}
	return req.RequestID, nil
}

// Close tears the connection down.
func (c *Client) Close() error { return c.conn.Close() }
