package game

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/numdown/numdown-backend/internal"
)

// fakeConn records every envelope written to it, standing in for a websocket
// connection.
type fakeConn struct {
	mu     sync.Mutex
	events []internal.Message[json.RawMessage]
	closed bool
}

func (f *fakeConn) WriteJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var msg internal.Message[json.RawMessage]
	if err := json.Unmarshal(raw, &msg); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) hasEvent(eventType string) bool {
	_, ok := f.lastOfType(eventType)
	return ok
}

func (f *fakeConn) lastOfType(eventType string) (json.RawMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Type == eventType {
			return f.events[i].Data, true
		}
	}
	return nil, false
}

func decodeEvent[T any](t *testing.T, f *fakeConn, eventType string) T {
	t.Helper()
	raw, ok := f.lastOfType(eventType)
	require.True(t, ok, "expected a %q event", eventType)
	var data T
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

// setupRoom creates a room with the first name as creator and joins the rest,
// returning the room code and each player's fake connection.
func setupRoom(t *testing.T, reg *Registry, names ...string) (string, map[string]*fakeConn) {
	t.Helper()
	conns := make(map[string]*fakeConn, len(names))

	creator := &fakeConn{}
	code, err := reg.CreateRoom(creator, names[0])
	require.NoError(t, err)
	conns[names[0]] = creator

	for _, name := range names[1:] {
		fc := &fakeConn{}
		require.NoError(t, reg.JoinRoom(fc, code, name))
		conns[name] = fc
	}
	return code, conns
}
