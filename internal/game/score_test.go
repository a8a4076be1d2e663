package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/numdown/numdown-backend/internal"
)

func newPlayers(names ...string) []*internal.Player {
	players := make([]*internal.Player, 0, len(names))
	for _, name := range names {
		players = append(players, &internal.Player{Name: name})
	}
	return players
}

func TestResolveRoundTwoPlayerZeroGuess(t *testing.T) {
	players := newPlayers("A", "B")
	res := ResolveRound(players, map[string]float64{"A": 0, "B": 5})

	// B wins outright, no distance evaluation.
	assert.Equal(t, "B", res.Winner)
	assert.Equal(t, -1, res.Deltas["A"])
	assert.Equal(t, 0, res.Deltas["B"])
}

func TestResolveRoundTwoPlayerBothZero(t *testing.T) {
	players := newPlayers("A", "B")
	res := ResolveRound(players, map[string]float64{"A": 0, "B": 0})

	assert.Empty(t, res.Winner)
	assert.Equal(t, -1, res.Deltas["A"])
	assert.Equal(t, -1, res.Deltas["B"])
}

func TestResolveRoundTwoPlayerZeroButOtherIsDuplicate(t *testing.T) {
	players := newPlayers("A", "B", "C")
	players[2].Eliminated = true

	// The eliminated creator's 7 makes B's 7 a duplicate, so nobody wins.
	res := ResolveRound(players, map[string]float64{"A": 0, "B": 7, "C": 7})

	assert.Empty(t, res.Winner)
	assert.Equal(t, -1, res.Deltas["A"])
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, 0, res.Deltas["C"])
}

func TestResolveRoundTwoPlayerNoZeroUsesGeneralRules(t *testing.T) {
	players := newPlayers("A", "B")
	res := ResolveRound(players, map[string]float64{"A": 2, "B": 10})

	// mean 6, target 4.8: A is closer.
	assert.InDelta(t, 4.8, res.Target, 1e-9)
	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, 0, res.Deltas["A"])
}

func TestResolveRoundDuplicatesArePenalized(t *testing.T) {
	players := newPlayers("A", "B", "C")
	res := ResolveRound(players, map[string]float64{"A": 10, "B": 10, "C": 50})

	assert.InDelta(t, 18.6667, res.Target, 1e-3)
	assert.Equal(t, 19, res.RoundedTarget)
	// C is the sole non-duplicate candidate and wins by default.
	assert.Equal(t, "C", res.Winner)
	assert.Equal(t, -1, res.Deltas["A"])
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, 0, res.Deltas["C"])
}

func TestResolveRoundExactMatchDoublesThePenalty(t *testing.T) {
	players := newPlayers("A", "B", "C", "D")
	// sum 95, mean 23.75, target exactly 19.
	res := ResolveRound(players, map[string]float64{"A": 19, "B": 20, "C": 25, "D": 31})

	assert.Equal(t, 19, res.RoundedTarget)
	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, -2, res.Deltas["B"])
	assert.Equal(t, -2, res.Deltas["C"])
	assert.Equal(t, -2, res.Deltas["D"])
}

func TestResolveRoundExactMatchFirstInOrderWins(t *testing.T) {
	players := newPlayers("A", "B", "C", "D")
	res := ResolveRound(players, map[string]float64{"A": 19, "B": 19, "C": 25, "D": 32})

	assert.Equal(t, 19, res.RoundedTarget)
	assert.Equal(t, "A", res.Winner)
	// The second exact matcher pays double like everyone else.
	assert.Equal(t, -2, res.Deltas["B"])
	assert.Equal(t, -2, res.Deltas["C"])
	assert.Equal(t, -2, res.Deltas["D"])
}

func TestResolveRoundMissingSubmissionLosesOneInExactBranch(t *testing.T) {
	players := newPlayers("A", "B", "C")
	// sum 20, mean 10, target 8: A matches exactly.
	res := ResolveRound(players, map[string]float64{"A": 8, "C": 12})

	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, -2, res.Deltas["C"])
	assert.Equal(t, -1, res.Deltas["B"], "no submission costs one point, never two")
}

func TestResolveRoundMissingSubmissionLosesOne(t *testing.T) {
	players := newPlayers("A", "B", "C")
	// sum 40, mean 20, target 16: A is closer.
	res := ResolveRound(players, map[string]float64{"A": 10, "B": 30})

	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, -1, res.Deltas["C"])
}

func TestResolveRoundDistanceTieVoidsWinner(t *testing.T) {
	players := newPlayers("A", "B", "C")
	// sum 30, mean 10, target 8: B and C are both 2 away.
	res := ResolveRound(players, map[string]float64{"A": 14, "B": 10, "C": 6})

	assert.Empty(t, res.Winner)
	assert.Equal(t, -1, res.Deltas["A"])
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, -1, res.Deltas["C"])
}

func TestResolveRoundNoSubmissions(t *testing.T) {
	players := newPlayers("A", "B", "C")
	res := ResolveRound(players, map[string]float64{})

	assert.Zero(t, res.Target)
	assert.Zero(t, res.RoundedTarget)
	assert.Empty(t, res.Winner)
	for _, name := range []string{"A", "B", "C"} {
		assert.Equal(t, -1, res.Deltas[name])
	}
}

func TestResolveRoundEliminatedPlayersGetNoDelta(t *testing.T) {
	players := newPlayers("A", "B", "C")
	players[2].Eliminated = true

	// C never submitted and is eliminated: no missing-submission penalty.
	res := ResolveRound(players, map[string]float64{"A": 10, "B": 30})

	assert.Equal(t, 0, res.Deltas["C"])
	assert.NotEqual(t, "C", res.Winner)
}

func TestResolveRoundEliminatedSubmitterCountsTowardTargetButCannotWin(t *testing.T) {
	players := newPlayers("A", "B", "C")
	players[2].Eliminated = true

	// C's value shifts the mean but C takes no delta and never wins.
	res := ResolveRound(players, map[string]float64{"A": 5, "B": 10, "C": 0})

	assert.InDelta(t, 4.0, res.Target, 1e-9)
	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, -1, res.Deltas["B"])
	assert.Equal(t, 0, res.Deltas["C"])
}

func TestResolveRoundIsDeterministic(t *testing.T) {
	players := newPlayers("A", "B", "C", "D")
	submissions := map[string]float64{"A": 3, "B": 17, "C": 42, "D": 17}

	first := ResolveRound(players, submissions)
	for i := 0; i < 10; i++ {
		again := ResolveRound(players, submissions)
		assert.Equal(t, first, again)
	}
}
