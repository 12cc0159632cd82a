package bracket

import "github.com/mauv0809/padel-brackets/internal/tournament"

func intPtr(v int) *int { return &v }

func couple(id int, names ...string) Couple {
	c := Couple{ID: id}
	for _, n := range names {
		c.Players = append(c.Players, Player{Name: n})
	}
	return c
}

func resolved(names ...string) Slot {
	s := Slot{Kind: SlotResolved}
	for _, n := range names {
		s.Players = append(s.Players, Player{Name: n})
	}
	return s
}

func advancing(label string) Slot {
	return Slot{Kind: SlotAdvancing, Label: label, Text: "Winner of " + label}
}

func game(id int, label string, s1, s2 Slot, status tournament.GameStatus) Match {
	return Match{GameID: id, Label: label, Slot1: s1, Slot2: s2, Status: status}
}
