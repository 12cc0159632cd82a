package bracket

import (
	"testing"

	"github.com/mauv0809/padel-brackets/internal/tournament"
	"github.com/stretchr/testify/assert"
)

func TestCanScore_FirstRound(t *testing.T) {
	rounds := [][]Match{{
		game(1, "J1", resolved("A"), resolved("B"), tournament.StatusNotStarted),
		game(2, "J2", resolved("C"), Slot{Kind: SlotUnresolved}, tournament.StatusNotStarted),
		game(3, "J3", Slot{Kind: SlotAdvancing, Text: "TBD"}, resolved("D"), tournament.StatusNotStarted),
		game(4, "J4", resolved("E"), resolved("F"), tournament.StatusCompleted),
	}}

	assert.True(t, CanScore(rounds, 0, 0))
	assert.False(t, CanScore(rounds, 0, 1))
	assert.False(t, CanScore(rounds, 0, 2))
	assert.True(t, CanScore(rounds, 0, 3), "completed matches stay open for corrections")
}

func TestCanScore_LaterRounds(t *testing.T) {
	prevRound := func(completed int) []Match {
		round := make([]Match, 4)
		for i := range round {
			status := tournament.StatusInProgress
			if i < completed {
				status = tournament.StatusCompleted
			}
			round[i] = game(i+1, "", resolved("A"), resolved("B"), status)
		}
		return round
	}
	next := []Match{
		game(10, "Q1", resolved("A"), resolved("C"), tournament.StatusNotStarted),
		game(11, "Q2", resolved("E"), advancing("J4"), tournament.StatusNotStarted),
	}

	tests := []struct {
		name      string
		completed int
		wantQ1    bool
		wantQ2    bool
	}{
		{name: "0% of previous round completed", completed: 0, wantQ1: false, wantQ2: false},
		{name: "50% of previous round completed", completed: 2, wantQ1: false, wantQ2: false},
		{name: "100% of previous round completed", completed: 4, wantQ1: true, wantQ2: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds := [][]Match{prevRound(tt.completed), next}
			assert.Equal(t, tt.wantQ1, CanScore(rounds, 1, 0))
			assert.Equal(t, tt.wantQ2, CanScore(rounds, 1, 1), "an unresolved slot keeps the match closed")
		})
	}
}

func TestCanScore_OutOfRange(t *testing.T) {
	rounds := [][]Match{{game(1, "", resolved("A"), resolved("B"), tournament.StatusNotStarted)}}
	assert.False(t, CanScore(rounds, 1, 0))
	assert.False(t, CanScore(rounds, 0, 5))
	assert.False(t, CanScore(nil, 0, 0))
}

func TestRoundCompleted(t *testing.T) {
	assert.True(t, RoundCompleted(nil), "an empty round has nothing pending")
	assert.False(t, RoundCompleted([]Match{{Status: tournament.StatusCompleted}, {Status: tournament.StatusInProgress}}))
}
