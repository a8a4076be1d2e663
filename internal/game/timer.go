package game

import (
	"context"
	"log"
	"time"

	"github.com/numdown/numdown-backend/internal"
)

// armRoundTimer schedules resolution of the round that just started. Exactly
// one timer is outstanding per active round; it is cancelled only by room
// teardown, never by everyone having submitted. Caller must hold room.Mu.
func (reg *Registry) armRoundTimer(room *internal.Room) {
	ctx, cancel := context.WithTimeout(context.Background(), reg.roundDuration)
	room.TimerCancel = cancel
	code := room.Code

	go func() {
		started := time.Now()
		<-ctx.Done()
		if ctx.Err() != context.DeadlineExceeded {
			log.Printf("[armRoundTimer] Room %s: timer cancelled before expiry", code)
			return
		}
		log.Printf("[armRoundTimer] Room %s: round deadline reached after %v", code, time.Since(started).Round(time.Second))
		// The callback re-fetches state by code; the room may be long gone.
		reg.resolveRound(code)
	}()
}
