package game

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/numdown/numdown-backend/internal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn wraps a gorilla connection with a write mutex so that broadcasts and
// session-level unicasts never interleave frames.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// session is the per-connection state the transport keeps on the engine's
// behalf: which room the connection is in and under which name.
type session struct {
	registry *Registry
	conn     *wsConn

	roomCode   string
	playerName string
}

// HandleWebSocket upgrades the connection and runs its message loop until the
// client goes away.
func (reg *Registry) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] Upgrade failed: %v", err)
		return
	}
	sess := &session{registry: reg, conn: &wsConn{conn: conn}}
	sess.run(conn)
}

func (s *session) run(conn *websocket.Conn) {
	defer func() {
		conn.Close()
		// A dropped connection leaves the room exactly like an explicit
		// leaveRoom would.
		if s.roomCode != "" {
			s.registry.RemovePlayer(s.roomCode, s.playerName)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[session] Read error for %q: %v", s.playerName, err)
			return
		}
		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[session] Malformed message from %q: %v", s.playerName, err)
			continue
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg internal.Message[json.RawMessage]) {
	switch msg.Type {
	case "createRoom":
		var name string
		if err := json.Unmarshal(msg.Data, &name); err != nil || name == "" {
			log.Printf("[session] createRoom: bad payload: %v", err)
			return
		}
		s.leaveCurrentRoom()
		code, err := s.registry.CreateRoom(s.conn, name)
		if err != nil {
			s.sendError(err)
			return
		}
		s.roomCode, s.playerName = code, name

	case "joinRoom":
		var data internal.JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Name == "" {
			log.Printf("[session] joinRoom: bad payload: %v", err)
			return
		}
		s.leaveCurrentRoom()
		if err := s.registry.JoinRoom(s.conn, data.Code, data.Name); err != nil {
			s.sendError(err)
			return
		}
		s.roomCode, s.playerName = data.Code, data.Name

	case "startGame":
		if s.roomCode == "" {
			return
		}
		switch err := s.registry.StartGame(s.roomCode, s.playerName); err {
		case nil:
		case ErrRoomNotFound:
			// Stale session against a torn-down room; drop silently.
			log.Printf("[session] startGame from %q: room %s gone", s.playerName, s.roomCode)
		default:
			s.sendError(err)
		}

	case "submitNumber":
		var value float64
		if err := json.Unmarshal(msg.Data, &value); err != nil {
			log.Printf("[session] submitNumber from %q: non-numeric payload: %v", s.playerName, err)
			return
		}
		if s.roomCode == "" {
			return
		}
		s.registry.SubmitNumber(s.roomCode, s.playerName, value)

	case "leaveRoom":
		s.leaveCurrentRoom()

	default:
		log.Printf("[session] Unknown message type %q from %q", msg.Type, s.playerName)
	}
}

func (s *session) leaveCurrentRoom() {
	if s.roomCode == "" {
		return
	}
	s.registry.RemovePlayer(s.roomCode, s.playerName)
	s.roomCode, s.playerName = "", ""
}

func (s *session) sendError(err error) {
	msg := internal.Message[internal.ErrorData]{
		Type: "error",
		Data: internal.ErrorData{Message: err.Error()},
	}
	if werr := s.conn.WriteJSON(msg); werr != nil {
		log.Printf("[session] Failed to send error to %q: %v", s.playerName, werr)
	}
}
