package bracket

import "strings"

// MatchRef locates a match inside the phase-ordered rounds.
type MatchRef struct {
	Round  int `json:"round"`
	Index  int `json:"index"`
	GameID int `json:"game_id"`
}

// Edge links the match whose winner advances to the slot it fills in the next round.
type Edge struct {
	From   MatchRef `json:"from"`
	To     MatchRef `json:"to"`
	ToSlot int      `json:"to_slot"`
	Label  string   `json:"label"`
}

// BuildEdges derives the advancement edges between consecutive rounds. Links
// are made by game label, not by position, so byes and partially populated
// phases connect correctly.
func BuildEdges(rounds [][]Match) []Edge {
	var edges []Edge
	for r := 1; r < len(rounds); r++ {
		edges = append(edges, linkRound(r, rounds[r-1], rounds[r])...)
	}
	return edges
}

// linkRound emits the edges that end in round r. A slot whose label has no
// source in the previous round gets no edge.
func linkRound(r int, prev, cur []Match) []Edge {
	byLabel := make(map[string]int, len(prev))
	for i, m := range prev {
		label := strings.TrimSpace(m.Label)
		if label == "" {
			continue
		}
		if _, dup := byLabel[label]; !dup {
			byLabel[label] = i
		}
	}

	var edges []Edge
	for i, m := range cur {
		for n := 1; n <= 2; n++ {
			s := m.Slot(n)
			if s.Kind != SlotAdvancing || s.Label == "" {
				continue
			}
			src, ok := byLabel[strings.TrimSpace(s.Label)]
			if !ok {
				continue
			}
			edges = append(edges, Edge{
				From:   MatchRef{Round: r - 1, Index: src, GameID: prev[src].GameID},
				To:     MatchRef{Round: r, Index: i, GameID: m.GameID},
				ToSlot: n,
				Label:  s.Label,
			})
		}
	}
	return edges
}

// propagate fills advancing slots whose source match has an identified
// winner with that winner's players. Slots only ever move forward to Resolved.
func propagate(rounds [][]Match, edges []Edge, winners [][]WinnerSide) {
	for _, e := range edges {
		src := rounds[e.From.Round][e.From.Index]
		side := winners[e.From.Round][e.From.Index]
		if side == WinnerNone {
			continue
		}
		dst := rounds[e.To.Round][e.To.Index].Slot(e.ToSlot)
		if dst.Kind != SlotAdvancing {
			continue
		}
		winner := src.Slot1
		if side == WinnerSlot2 {
			winner = src.Slot2
		}
		*dst = Slot{Kind: SlotResolved, Players: append([]Player(nil), winner.Players...)}
	}
}
