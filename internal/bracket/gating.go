package bracket

import "github.com/mauv0809/padel-brackets/internal/tournament"

// RoundCompleted reports whether every match of a round is completed.
func RoundCompleted(round []Match) bool {
	for _, m := range round {
		if m.Status != tournament.StatusCompleted {
			return false
		}
	}
	return true
}

// CanScore decides whether match i of round r may accept a score. Round 0 is
// open when both slots are resolved. Later rounds additionally require the
// whole previous round to be completed, since advancement is round-synchronized.
func CanScore(rounds [][]Match, r, i int) bool {
	if r < 0 || r >= len(rounds) || i < 0 || i >= len(rounds[r]) {
		return false
	}
	m := rounds[r][i]
	if !m.Slot1.IsResolved() || !m.Slot2.IsResolved() {
		return false
	}
	if r == 0 {
		return true
	}
	return RoundCompleted(rounds[r-1])
}
