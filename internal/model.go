package internal

import (
	"context"
	"sync"
	"time"
)

const (
	RoundDuration        = 60 * time.Second
	EliminationThreshold = -10
	MinActiveToStart     = 2
	RoomCodeLength       = 6
)

// Room holds the full per-room game state. All fields are guarded by Mu;
// helper methods assume the caller already holds it.
type Room struct {
	Code    string
	Players []*Player // insertion order, never reordered
	Creator string    // player name, not a connection identity

	// Round state
	Submissions map[string]float64 // keyed by player name, cleared every round
	GameStarted bool

	// Set when the room has been deleted from the registry; late actions
	// against it must not resurrect state.
	Closed bool

	TimerCancel context.CancelFunc

	Mu sync.RWMutex
}

func (r *Room) FindPlayer(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (r *Room) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

func (r *Room) ActiveCount() int {
	return len(r.ActivePlayers())
}

func (r *Room) PlayerSnapshots() []PlayerSnapshot {
	snapshots := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		snapshots = append(snapshots, p.Snapshot())
	}
	return snapshots
}
