package bracket

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// WinnerSide tells which slot of a match, if any, is the identified winner.
type WinnerSide int

const (
	WinnerNone WinnerSide = iota
	WinnerSlot1
	WinnerSlot2
)

func (w WinnerSide) String() string {
	switch w {
	case WinnerSlot1:
		return "slot_1"
	case WinnerSlot2:
		return "slot_2"
	default:
		return "none"
	}
}

func (w WinnerSide) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *WinnerSide) UnmarshalText(text []byte) error {
	switch string(text) {
	case "slot_1":
		*w = WinnerSlot1
	case "slot_2":
		*w = WinnerSlot2
	case "none", "":
		*w = WinnerNone
	default:
		return fmt.Errorf("unknown winner side %q", text)
	}
	return nil
}

// IdentityMatcher reconciles couple ids from group standings with the player
// names shown in elimination slots.
type IdentityMatcher struct {
	keyByID  map[int]string
	idsByKey map[string][]int
}

// NewIdentityMatcher indexes every ranked couple of every group.
func NewIdentityMatcher(groups []GroupStanding) *IdentityMatcher {
	m := &IdentityMatcher{
		keyByID:  make(map[int]string),
		idsByKey: make(map[string][]int),
	}
	for _, g := range groups {
		for _, st := range g.Ranking {
			m.Add(st.Couple)
		}
	}
	return m
}

// Add indexes one couple. Couples without usable names are ignored.
func (m *IdentityMatcher) Add(c Couple) {
	key := playersKey(c.Players)
	if key == "" {
		return
	}
	if _, seen := m.keyByID[c.ID]; seen {
		return
	}
	m.keyByID[c.ID] = key
	m.idsByKey[key] = append(m.idsByKey[key], c.ID)
}

// Len returns the number of indexed couples.
func (m *IdentityMatcher) Len() int { return len(m.keyByID) }

// NameKey returns the key recorded for a couple id.
func (m *IdentityMatcher) NameKey(coupleID int) (string, bool) {
	k, ok := m.keyByID[coupleID]
	return k, ok
}

// Candidates returns the couple ids whose players match a resolved slot.
func (m *IdentityMatcher) Candidates(s Slot) []int {
	if !s.IsResolved() {
		return nil
	}
	return m.idsByKey[playersKey(s.Players)]
}

// Winner determines which slot holds the match's winner couple. Matches with
// an unresolved slot, no winner, an unknown winner id, or an ambiguous name
// match yield WinnerNone.
func (m *IdentityMatcher) Winner(match Match) WinnerSide {
	if !match.Slot1.IsResolved() || !match.Slot2.IsResolved() || match.WinnerID == nil {
		return WinnerNone
	}
	key, ok := m.keyByID[*match.WinnerID]
	if !ok {
		return WinnerNone
	}
	first := playersKey(match.Slot1.Players) == key
	second := playersKey(match.Slot2.Players) == key
	switch {
	case first && !second:
		return WinnerSlot1
	case second && !first:
		return WinnerSlot2
	default:
		return WinnerNone
	}
}

// NameKey builds the comparison key for a list of player names: accents
// removed, lower-cased, sorted and comma-joined.
func NameKey(names []string) string {
	folded := make([]string, 0, len(names))
	for _, n := range names {
		if f := foldName(n); f != "" {
			folded = append(folded, f)
		}
	}
	sort.Strings(folded)
	return strings.Join(folded, ",")
}

func playersKey(players []Player) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return NameKey(names)
}

func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, name)
	if err != nil {
		out = name
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
