package bracket

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mauv0809/padel-brackets/internal/tournament"
)

var advancingPattern = regexp.MustCompile(`(?i)^\s*(?:winner\s+of|ganador\s+del?)\s+(.+?)\s*$`)

// ResolveSlot classifies a raw couple value from the payload. firstPhase
// reports whether the game belongs to the first phase in resolved order.
func ResolveSlot(raw json.RawMessage, firstPhase bool) Slot {
	raw = bytes.TrimSpace(raw)
	if isEmptyShape(raw) {
		// Outside the first phase an empty value is a data gap; it degrades the same way.
		return Slot{Kind: SlotUnresolved}
	}

	switch raw[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Slot{Kind: SlotUnresolved}
		}
		if pending, ok := obj["pending"]; ok {
			return advancingSlot(rawText(pending), firstPhase)
		}
		if players, ok := obj["players"]; ok {
			return resolvedSlot(players)
		}
		if _, ok := obj["name"]; ok {
			return resolvedSlot(json.RawMessage("[" + string(raw) + "]"))
		}
		return Slot{Kind: SlotUnresolved}
	case '[':
		return resolvedSlot(raw)
	case '"':
		// A bare string is treated as pending text.
		return advancingSlot(rawText(raw), firstPhase)
	}
	return Slot{Kind: SlotUnresolved}
}

// ParseAdvancingLabel extracts <label> from "Winner of <label>".
func ParseAdvancingLabel(text string) (string, bool) {
	m := advancingPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// advancingSlot builds the slot for pending text. The first phase has no
// previous round to advance from, so its pending text only names a team that
// has not been assigned yet.
func advancingSlot(text string, firstPhase bool) Slot {
	text = strings.TrimSpace(text)
	if text == "" {
		return Slot{Kind: SlotUnresolved}
	}
	if firstPhase {
		return Slot{Kind: SlotUnresolved, Text: text}
	}
	label, _ := ParseAdvancingLabel(text)
	return Slot{Kind: SlotAdvancing, Label: label, Text: text}
}

func resolvedSlot(raw json.RawMessage) Slot {
	players := parsePlayers(raw)
	if len(players) == 0 {
		return Slot{Kind: SlotUnresolved}
	}
	return Slot{Kind: SlotResolved, Players: players}
}

func parsePlayers(raw json.RawMessage) []Player {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	players := make([]Player, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		if item[0] == '"' {
			if name := strings.TrimSpace(rawText(item)); name != "" {
				players = append(players, Player{Name: name})
			}
			continue
		}
		var p tournament.Player
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		players = append(players, Player{
			Name:                name,
			Level:               string(p.Level),
			TournamentVictories: p.TournamentVictories,
		})
	}
	return players
}

func isEmptyShape(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) == nil && len(obj) == 0 {
		return true
	}
	var arr []json.RawMessage
	if json.Unmarshal(raw, &arr) == nil && len(arr) == 0 {
		return true
	}
	return false
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}
