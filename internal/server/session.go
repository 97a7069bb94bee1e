package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Session is one connected client. The display name is assigned at
// connect time and is not guaranteed unique; identity is the ID.
// Writes are serialized through writeMu (gorilla allows one concurrent
// writer per connection).
type Session struct {
	ID   uuid.UUID
	Name string

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{
		ID:   uuid.New(),
		Name: randomName(),
		conn: conn,
	}
}

// RemoteAddr identifies the peer for logging.
func (s *Session) RemoteAddr() string {
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

// Send pushes one text message to the client.
func (s *Session) Send(text string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// Close tears down the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}
