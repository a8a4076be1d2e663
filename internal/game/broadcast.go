package game

import (
	"log"

	"github.com/numdown/numdown-backend/internal"
)

// broadcastToRoom sends one message to every current room member. Delivery is
// best-effort: write failures are logged and skipped, the engine never waits
// on the transport.
func broadcastToRoom[T any](room *internal.Room, msg internal.Message[T]) {
	room.Mu.RLock()
	players := append([]*internal.Player(nil), room.Players...)
	code := room.Code
	room.Mu.RUnlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[Broadcast][Room:%s] Failed for player %s: %v", code, p.Name, err)
		}
	}
}

func unicast[T any](p *internal.Player, msg internal.Message[T]) {
	if err := p.SafeWriteJSON(msg); err != nil {
		log.Printf("[Unicast] Failed for player %s: %v", p.Name, err)
	}
}
