package feed

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/recera/graphlens/pkg/graph"
)

// Server broadcasts graph snapshots to connected viewers and surfaces their
// edge-creation requests to the host.
type Server struct {
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[*session]struct{}
	current  []byte // last broadcast snapshot, replayed to new sessions

	// OnCreateEdge is invoked for every incoming edge-creation request.
	// Optional; requests are dropped with a log line when nil.
	OnCreateEdge func(CreateEdgeRequest)
}

type session struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// NewServer creates a feed server.
func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[*session]struct{}),
	}
}

// HandleWebSocket upgrades the request and services the session until the
// peer disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[feed] upgrade failed: %v", err)
		return
	}
	sess := &session{
		conn: conn,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	replay := s.current
	s.mu.Unlock()

	if replay != nil {
		sess.send <- replay
	}

	go s.writePump(sess)
	s.readPump(sess)
}

// Broadcast pushes a snapshot to every connected session and retains it for
// future connections.
func (s *Server) Broadcast(snap *graph.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = data
	for sess := range s.sessions {
		select {
		case sess.send <- data:
		default:
			// Slow consumer: drop the frame rather than stall the rest.
			log.Printf("[feed] dropping snapshot for slow session")
		}
	}
	s.mu.Unlock()
	return nil
}

// SessionCount returns the number of connected viewers.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) writePump(sess *session) {
	for {
		select {
		case data := <-sess.send:
			if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-sess.done:
			return
		}
	}
}

func (s *Server) readPump(sess *session) {
	defer func() {
		close(sess.done)
		sess.conn.Close()
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
	}()
	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := Decode(data)
		if err != nil {
			log.Printf("[feed] bad message: %v", err)
			continue
		}
		if env.Type != MsgCreateEdge {
			log.Printf("[feed] unexpected upstream message type %q", env.Type)
			continue
		}
		req, err := DecodeCreateEdge(env)
		if err != nil {
			log.Printf("[feed] bad create_edge: %v", err)
			continue
		}
		if s.OnCreateEdge != nil {
			s.OnCreateEdge(req)
		} else {
			log.Printf("[feed] no create-edge handler, dropping %s -> %s", req.SourceID, req.TargetID)
		}
	}
}
