package internal

// PlayerConn is the transport-facing side of a player. Implementations must
// be safe for concurrent use; the engine broadcasts from multiple goroutines.
type PlayerConn interface {
	WriteJSON(v any) error
	Close() error
}

type Player struct {
	Name       string     `json:"name"`
	Score      int        `json:"score"`
	Eliminated bool       `json:"eliminated"`
	Conn       PlayerConn `json:"-"`
}

type PlayerSnapshot struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Eliminated bool   `json:"eliminated"`
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Name:       p.Name,
		Score:      p.Score,
		Eliminated: p.Eliminated,
	}
}

// SafeWriteJSON delivers a message to this player, tolerating players that
// never got a connection attached.
func (p *Player) SafeWriteJSON(v any) error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}
