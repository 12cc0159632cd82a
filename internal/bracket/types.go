package bracket

import "github.com/mauv0809/padel-brackets/internal/tournament"

// Player is a display record for one member of a couple.
type Player struct {
	Name                string `json:"name"`
	Level               string `json:"level,omitempty"`
	TournamentVictories int    `json:"tournament_victories,omitempty"`
}

// Couple is a team of one or two players identified by a stable id.
type Couple struct {
	ID      int      `json:"couple_id"`
	Players []Player `json:"players"`
}

// Standing is one ranked couple inside a group.
type Standing struct {
	Couple   Couple `json:"couple"`
	Position int    `json:"position"`
	Points   int    `json:"points"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Lost     int    `json:"lost"`
}

// GroupStanding is a round-robin pool. It is the source of the couple id to name mapping.
type GroupStanding struct {
	Name    string     `json:"group_name"`
	Ranking []Standing `json:"ranking"`
}

// SlotKind tags which variant a Slot holds.
type SlotKind string

const (
	SlotUnresolved SlotKind = "unresolved"
	SlotAdvancing  SlotKind = "advancing"
	SlotResolved   SlotKind = "resolved"
)

// Slot is one of a match's two team positions.
//
// Unresolved slots may carry display Text. Advancing slots carry the Label of
// the previous-round match whose winner fills them; an empty Label means the
// pending text could not be parsed and only Text can be shown. Resolved slots
// carry Players.
type Slot struct {
	Kind    SlotKind `json:"kind"`
	Label   string   `json:"label,omitempty"`
	Text    string   `json:"text,omitempty"`
	Players []Player `json:"players,omitempty"`
}

func (s Slot) IsResolved() bool { return s.Kind == SlotResolved }

// Names returns the player names of a resolved slot.
func (s Slot) Names() []string {
	names := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		names = append(names, p.Name)
	}
	return names
}

func (s Slot) clone() Slot {
	out := s
	if s.Players != nil {
		out.Players = append([]Player(nil), s.Players...)
	}
	return out
}

// Set is a pair of game scores for one set.
type Set struct {
	Number int `json:"set_number"`
	Score1 int `json:"score_1"`
	Score2 int `json:"score_2"`
}

// Match is an elimination game.
type Match struct {
	GameID    int                   `json:"game_id"`
	Phase     string                `json:"phase"`
	Round     int                   `json:"round"`
	Label     string                `json:"game_label,omitempty"`
	Slot1     Slot                  `json:"slot_1"`
	Slot2     Slot                  `json:"slot_2"`
	Status    tournament.GameStatus `json:"status"`
	WinnerID  *int                  `json:"winner_id,omitempty"`
	Sets      []Set                 `json:"sets"`
	Court     string                `json:"court,omitempty"`
	Date      string                `json:"date,omitempty"`
	StartTime string                `json:"start_time,omitempty"`
	EndTime   string                `json:"end_time,omitempty"`
}

// Clone returns a deep copy of the match.
func (m Match) Clone() Match {
	out := m
	out.Slot1 = m.Slot1.clone()
	out.Slot2 = m.Slot2.clone()
	if m.WinnerID != nil {
		id := *m.WinnerID
		out.WinnerID = &id
	}
	if m.Sets != nil {
		out.Sets = append([]Set(nil), m.Sets...)
	}
	return out
}

// Slot returns slot 1 or 2.
func (m *Match) Slot(n int) *Slot {
	if n == 1 {
		return &m.Slot1
	}
	return &m.Slot2
}

// Phase is a named elimination round with its matches.
type Phase struct {
	Key     string  `json:"key"`
	Rank    int     `json:"rank"`
	Matches []Match `json:"matches"`
}

// Category is a normalized tournament category with phases in canonical order.
type Category struct {
	ID       string          `json:"id"`
	Groups   []GroupStanding `json:"groups"`
	Phases   []Phase         `json:"phases"`
	Champion Slot            `json:"champion"`
}
