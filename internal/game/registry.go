package game

import (
	"log"
	"slices"
	"sync"
	"time"

	"github.com/numdown/numdown-backend/internal"
	"github.com/numdown/numdown-backend/internal/utils"
)

const maxCodeAttempts = 1000

// Registry owns every room in this server instance. It is injected wherever
// rooms are needed; there is no process-wide room state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room

	roundDuration        time.Duration
	eliminationThreshold int
}

func NewRegistry(roundDuration time.Duration, eliminationThreshold int) *Registry {
	if roundDuration <= 0 {
		roundDuration = internal.RoundDuration
	}
	if eliminationThreshold >= 0 {
		eliminationThreshold = internal.EliminationThreshold
	}
	return &Registry{
		rooms:                make(map[string]*internal.Room),
		roundDuration:        roundDuration,
		eliminationThreshold: eliminationThreshold,
	}
}

func (reg *Registry) GetRoom(code string) *internal.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// CreateRoom allocates a fresh code, inserts a room with the creating player
// and unicasts roomCreated to them.
func (reg *Registry) CreateRoom(conn internal.PlayerConn, creatorName string) (string, error) {
	creator := &internal.Player{Name: creatorName, Conn: conn}
	room := &internal.Room{
		Players:     []*internal.Player{creator},
		Creator:     creatorName,
		Submissions: make(map[string]float64),
	}

	reg.mu.Lock()
	code := ""
	for i := 0; i < maxCodeAttempts; i++ {
		candidate := utils.GenerateRoomCode(internal.RoomCodeLength)
		if _, taken := reg.rooms[candidate]; !taken {
			code = candidate
			break
		}
	}
	if code == "" {
		reg.mu.Unlock()
		log.Printf("[CreateRoom] Code space exhausted after %d attempts", maxCodeAttempts)
		return "", ErrNoAvailableCodes
	}
	room.Code = code
	reg.rooms[code] = room
	reg.mu.Unlock()

	log.Printf("[CreateRoom] Room %s created by %s", code, creatorName)
	unicast(creator, internal.Message[internal.RoomCreatedData]{
		Type: "roomCreated",
		Data: internal.RoomCreatedData{
			Code:      code,
			Players:   []internal.PlayerSnapshot{creator.Snapshot()},
			IsCreator: true,
		},
	})
	return code, nil
}

// JoinRoom appends a player to an existing room and tells everyone about the
// new roster.
func (reg *Registry) JoinRoom(conn internal.PlayerConn, code, name string) error {
	room := reg.GetRoom(code)
	if room == nil {
		return ErrRoomNotFound
	}

	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return ErrRoomNotFound
	}
	if room.FindPlayer(name) != nil {
		room.Mu.Unlock()
		return ErrNameTaken
	}
	if room.GameStarted {
		room.Mu.Unlock()
		return ErrGameInProgress
	}
	player := &internal.Player{Name: name, Conn: conn}
	room.Players = append(room.Players, player)
	snapshots := room.PlayerSnapshots()
	room.Mu.Unlock()

	log.Printf("[JoinRoom] Player %s joined room %s (%d players)", name, code, len(snapshots))
	unicast(player, internal.Message[internal.RoomJoinedData]{
		Type: "roomJoined",
		Data: internal.RoomJoinedData{Code: code, Players: snapshots, IsCreator: false},
	})
	broadcastToRoom(room, internal.Message[internal.UpdatePlayersData]{
		Type: "updatePlayers",
		Data: internal.UpdatePlayersData{Players: snapshots},
	})
	return nil
}

// RemovePlayer is the single funnel for explicit leaves and transport
// disconnects. It handles empty-room deletion, creator succession and the
// forced game end when a running round drops below 2 active players.
func (reg *Registry) RemovePlayer(code, name string) {
	room := reg.GetRoom(code)
	if room == nil {
		return
	}

	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return
	}
	idx := slices.IndexFunc(room.Players, func(p *internal.Player) bool { return p.Name == name })
	if idx < 0 {
		room.Mu.Unlock()
		return
	}
	room.Players = slices.Delete(room.Players, idx, idx+1)
	delete(room.Submissions, name)

	if len(room.Players) == 0 {
		room.Mu.Unlock()
		log.Printf("[RemovePlayer] Room %s is empty, deleting", code)
		reg.deleteRoom(room)
		return
	}

	var newCreator string
	creatorLeft := room.Creator == name
	if creatorLeft {
		newCreator = pickSuccessor(room.Players)
		room.Creator = newCreator
		log.Printf("[RemovePlayer] Room %s: creator %s left, successor %q", code, name, newCreator)
	}

	gameStarted := room.GameStarted
	active := room.ActiveCount()
	snapshots := room.PlayerSnapshots()
	room.Mu.Unlock()

	log.Printf("[RemovePlayer] Room %s: removed %s, %d players remain (%d active)",
		code, name, len(snapshots), active)

	if creatorLeft && newCreator != "" {
		broadcastToRoom(room, internal.Message[internal.CreatorChangedData]{
			Type: "creatorChanged",
			Data: internal.CreatorChangedData{NewCreator: newCreator},
		})
	}
	broadcastToRoom(room, internal.Message[internal.UpdatePlayersData]{
		Type: "updatePlayers",
		Data: internal.UpdatePlayersData{Players: snapshots},
	})

	if gameStarted && active < 2 {
		reg.endGame(room, "No one (not enough players)")
		return
	}
	// A room that lost its last active player can never be restarted; tear it
	// down rather than leave an ownerless shell behind.
	if creatorLeft && newCreator == "" {
		reg.endGame(room, "No one")
	}
}

// deleteRoom removes the room from the registry and cancels any outstanding
// round timer. A timer that already fired will find Closed set and no-op.
func (reg *Registry) deleteRoom(room *internal.Room) {
	reg.mu.Lock()
	delete(reg.rooms, room.Code)
	reg.mu.Unlock()

	room.Mu.Lock()
	room.Closed = true
	if room.TimerCancel != nil {
		room.TimerCancel()
		room.TimerCancel = nil
	}
	room.Mu.Unlock()
}

// pickSuccessor returns the name of the highest-scoring non-eliminated
// player, first in insertion order on ties. Empty when no active player
// remains. Caller must hold room.Mu.
func pickSuccessor(players []*internal.Player) string {
	var best *internal.Player
	for _, p := range players {
		if p.Eliminated {
			continue
		}
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	if best == nil {
		return ""
	}
	return best.Name
}
