package game

import (
	"log"

	"github.com/numdown/numdown-backend/internal"
)

// StartGame moves a room from lobby into an active round. Only the current
// creator may start; an eliminated creator is still allowed to (ownership is
// decoupled from elimination). At least 2 non-eliminated players must be
// present.
func (reg *Registry) StartGame(code, actorName string) error {
	room := reg.GetRoom(code)
	if room == nil {
		return ErrRoomNotFound
	}

	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return ErrRoomNotFound
	}
	if room.Creator != actorName {
		room.Mu.Unlock()
		return ErrNotCreator
	}
	if room.GameStarted {
		room.Mu.Unlock()
		return ErrGameInProgress
	}
	active := room.ActiveCount()
	if active < internal.MinActiveToStart {
		room.Mu.Unlock()
		return ErrInsufficientPlayers
	}
	room.Submissions = make(map[string]float64)
	room.GameStarted = true
	reg.armRoundTimer(room)
	room.Mu.Unlock()

	log.Printf("[StartGame] Room %s: round started with %d active players", code, active)
	broadcastToRoom(room, internal.Message[internal.GameStartedData]{
		Type: "gameStarted",
		Data: internal.GameStartedData{},
	})
	return nil
}

// SubmitNumber records one player's value for the current round, overwriting
// any earlier one. Ineligible or stale submissions are dropped without an
// error: the client cannot tell a stale event from an invalid one, so
// surfacing it would only confuse it.
func (reg *Registry) SubmitNumber(code, name string, value float64) {
	room := reg.GetRoom(code)
	if room == nil {
		log.Printf("[SubmitNumber] Player %s: dropped, room %s gone", name, code)
		return
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed || !room.GameStarted {
		log.Printf("[SubmitNumber] Player %s: dropped, no round active in room %s", name, code)
		return
	}
	player := room.FindPlayer(name)
	if player == nil {
		log.Printf("[SubmitNumber] Player %s: dropped, not in room %s", name, code)
		return
	}
	// Eliminated players are spectators, except the creator who keeps the
	// right to participate.
	if player.Eliminated && room.Creator != name {
		log.Printf("[SubmitNumber] Player %s: dropped, eliminated (score %d)", name, player.Score)
		return
	}
	room.Submissions[name] = value
	log.Printf("[SubmitNumber] Player %s submitted %v in room %s", name, value, code)
}

// resolveRound is the round timer's callback. It re-fetches the room by code
// and tolerates every race with teardown: a deleted or idle room is a no-op.
func (reg *Registry) resolveRound(code string) {
	room := reg.GetRoom(code)
	if room == nil {
		log.Printf("[resolveRound] Room %s gone before resolution", code)
		return
	}

	room.Mu.Lock()
	if room.Closed || !room.GameStarted {
		room.Mu.Unlock()
		log.Printf("[resolveRound] Room %s: round already over, skipping", code)
		return
	}

	result := ResolveRound(room.Players, room.Submissions)
	var eliminated []*internal.Player
	for _, p := range room.Players {
		p.Score += result.Deltas[p.Name]
		// Monotonic: once eliminated, a player never comes back.
		if !p.Eliminated && p.Score <= reg.eliminationThreshold {
			p.Eliminated = true
			eliminated = append(eliminated, p)
		}
	}
	room.Submissions = make(map[string]float64)
	room.GameStarted = false
	if room.TimerCancel != nil {
		// No-op when the deadline itself got us here; releases the context
		// when resolution was reached another way.
		room.TimerCancel()
		room.TimerCancel = nil
	}

	var newCreator string
	creatorChanged := false
	if creator := room.FindPlayer(room.Creator); creator == nil || creator.Eliminated {
		newCreator = pickSuccessor(room.Players)
		if newCreator != room.Creator {
			room.Creator = newCreator
			creatorChanged = newCreator != ""
		}
	}

	snapshots := room.PlayerSnapshots()
	activePlayers := room.ActivePlayers()
	room.Mu.Unlock()

	log.Printf("[resolveRound] Room %s: target=%.2f rounded=%d winner=%q, %d active remain",
		code, result.Target, result.RoundedTarget, result.Winner, len(activePlayers))

	var winner *string
	if result.Winner != "" {
		winner = &result.Winner
	}
	broadcastToRoom(room, internal.Message[internal.RoundResultData]{
		Type: "roundResult",
		Data: internal.RoundResultData{
			Target:        result.Target,
			RoundedTarget: result.RoundedTarget,
			Winner:        winner,
			Scores:        snapshots,
		},
	})
	for _, p := range eliminated {
		log.Printf("[resolveRound] Room %s: player %s eliminated (score %d)", code, p.Name, p.Score)
		unicast(p, internal.Message[internal.ErrorData]{
			Type: "error",
			Data: internal.ErrorData{Message: "You have been eliminated (score <= -10)."},
		})
	}
	if creatorChanged {
		broadcastToRoom(room, internal.Message[internal.CreatorChangedData]{
			Type: "creatorChanged",
			Data: internal.CreatorChangedData{NewCreator: newCreator},
		})
	}
	broadcastToRoom(room, internal.Message[internal.UpdatePlayersData]{
		Type: "updatePlayers",
		Data: internal.UpdatePlayersData{Players: snapshots},
	})

	if len(activePlayers) <= 1 {
		winner := "No one"
		if len(activePlayers) == 1 {
			winner = activePlayers[0].Name
		}
		reg.endGame(room, winner)
		return
	}
	log.Printf("[resolveRound] Room %s: waiting for creator to start the next round", code)
}

// endGame broadcasts the final outcome, closes every member connection and
// deletes the room. No further actions against the code succeed.
func (reg *Registry) endGame(room *internal.Room, winner string) {
	room.Mu.RLock()
	if room.Closed {
		room.Mu.RUnlock()
		return
	}
	code := room.Code
	players := append([]*internal.Player(nil), room.Players...)
	room.Mu.RUnlock()

	log.Printf("[endGame] Room %s: game ended, winner: %s", code, winner)
	broadcastToRoom(room, internal.Message[internal.GameEndedData]{
		Type: "gameEnded",
		Data: internal.GameEndedData{Winner: winner},
	})

	reg.deleteRoom(room)
	for _, p := range players {
		if p.Conn != nil {
			if err := p.Conn.Close(); err != nil {
				log.Printf("[endGame] Room %s: closing connection for %s: %v", code, p.Name, err)
			}
		}
	}
}
