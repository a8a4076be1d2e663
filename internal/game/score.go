package game

import (
	"math"

	"github.com/numdown/numdown-backend/internal"
)

// RoundResult is the outcome of one scoring pass. Deltas carries the score
// change per player name; players absent from the map are unchanged.
type RoundResult struct {
	Target        float64
	RoundedTarget int
	Winner        string // empty when no one wins the round
	Deltas        map[string]int
}

// ResolveRound applies the round rule set to one submissions map. It is pure:
// players are only read (name, eliminated flag), nothing is mutated, and no
// state survives between calls.
//
// Rules, in evaluation order:
//  1. target = 0.8 * mean of every submitted value, 0 when nothing was
//     submitted. Eliminated submitters (the creator allowance) count toward
//     the mean and duplicates but never receive a delta and never win.
//  2. An active player with no submission loses 1, in every branch.
//  3. With exactly 2 active players, a 0 guess is penalized outright and the
//     other player wins without any distance evaluation, provided their value
//     is a non-duplicate submission.
//  4. The first active player (insertion order) whose guess equals the
//     rounded target wins by exact match; every other active submitter loses
//     2 instead of the usual 1.
//  5. Otherwise the active player with the non-duplicate guess closest to the
//     unrounded target wins; a tie in minimum distance voids the winner.
//  6. Every active submitter who did not win loses 1. This covers the
//     duplicate penalty too: duplicates can never win, so they always land
//     here.
func ResolveRound(players []*internal.Player, submissions map[string]float64) RoundResult {
	res := RoundResult{Deltas: make(map[string]int)}

	var sum float64
	for _, v := range submissions {
		sum += v
	}
	if len(submissions) > 0 {
		res.Target = sum / float64(len(submissions)) * 0.8
	}
	res.RoundedTarget = int(math.Round(res.Target))

	counts := make(map[float64]int, len(submissions))
	for _, v := range submissions {
		counts[v]++
	}
	isDuplicate := func(v float64) bool { return counts[v] > 1 }

	active := make([]*internal.Player, 0, len(players))
	for _, p := range players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}

	// Missing submissions always cost one point.
	for _, p := range active {
		if _, ok := submissions[p.Name]; !ok {
			res.Deltas[p.Name] = -1
		}
	}

	// Two-player subgame: guessing 0 dominates every other rule.
	if len(active) == 2 {
		if done := resolveZeroGuess(active, submissions, isDuplicate, &res); done {
			return res
		}
	}

	// Exact match against the rounded target: first in order wins, everyone
	// else who submitted pays double.
	for _, p := range active {
		v, ok := submissions[p.Name]
		if !ok || v != float64(res.RoundedTarget) {
			continue
		}
		res.Winner = p.Name
		for _, q := range active {
			if q.Name == p.Name {
				continue
			}
			if _, submitted := submissions[q.Name]; submitted {
				res.Deltas[q.Name] = -2
			}
		}
		return res
	}

	// Closest non-duplicate guess to the unrounded target.
	best := math.MaxFloat64
	tied := false
	for _, p := range active {
		v, ok := submissions[p.Name]
		if !ok || isDuplicate(v) {
			continue
		}
		d := math.Abs(v - res.Target)
		switch {
		case d < best:
			best = d
			res.Winner = p.Name
			tied = false
		case d == best:
			tied = true
		}
	}
	if tied {
		res.Winner = ""
	}

	for _, p := range active {
		if _, ok := submissions[p.Name]; !ok {
			continue
		}
		if p.Name == res.Winner {
			continue
		}
		res.Deltas[p.Name] = -1
	}
	return res
}

// resolveZeroGuess handles the 2-active-player zero rule. Returns false when
// nobody guessed 0, leaving the round to the general branches.
func resolveZeroGuess(active []*internal.Player, submissions map[string]float64, isDuplicate func(float64) bool, res *RoundResult) bool {
	zeroGuessers := 0
	var other *internal.Player
	for _, p := range active {
		if v, ok := submissions[p.Name]; ok && v == 0 {
			zeroGuessers++
			res.Deltas[p.Name] = -1
		} else {
			other = p
		}
	}
	if zeroGuessers == 0 {
		return false
	}
	if zeroGuessers == 2 {
		return true
	}
	v, ok := submissions[other.Name]
	if !ok {
		// Already penalized for the missing submission, and a player with no
		// value cannot win.
		return true
	}
	if isDuplicate(v) {
		res.Deltas[other.Name] = -1
		return true
	}
	res.Winner = other.Name
	return true
}
