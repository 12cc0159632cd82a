package tournament

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned when the backend answers 404 for a category or game.
var ErrNotFound = errors.New("not found")

// GameStatus is the normalized lifecycle state of a game.
type GameStatus string

const (
	StatusNotStarted GameStatus = "not_started"
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
)

var statusAliases = map[string]GameStatus{
	"not_started": StatusNotStarted,
	"pending":     StatusNotStarted,
	"scheduled":   StatusNotStarted,
	"pendiente":   StatusNotStarted,
	"in_progress": StatusInProgress,
	"playing":     StatusInProgress,
	"en_curso":    StatusInProgress,
	"completed":   StatusCompleted,
	"finished":    StatusCompleted,
	"played":      StatusCompleted,
	"finalizado":  StatusCompleted,
}

// ParseStatus maps a backend status string onto a GameStatus. Unknown values
// are treated as not started.
func ParseStatus(raw string) GameStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	if s, ok := statusAliases[key]; ok {
		return s
	}
	if key != "" {
		log.Warn("Unknown game status received from backend", "status", raw)
	}
	return StatusNotStarted
}

// Progress orders statuses so that regressions can be detected.
func (s GameStatus) Progress() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 0
	}
}

// CategoryPayload is the raw per-category document served by the backend.
type CategoryPayload struct {
	Groups      []Group         `json:"groups"`
	Elimination Elimination     `json:"elimination"`
	Winner      json.RawMessage `json:"winner,omitempty"`
}

// Group is one round-robin pool with its pre-computed ranking.
type Group struct {
	Name    string         `json:"group_name"`
	Games   []Game         `json:"games"`
	Ranking []RankedCouple `json:"ranking"`
}

// UnmarshalJSON decodes games and ranking entries one by one so a single
// malformed entry is dropped without losing the rest of the group.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    FlexString      `json:"group_name"`
		Games   json.RawMessage `json:"games"`
		Ranking json.RawMessage `json:"ranking"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Name = string(raw.Name)

	games, err := decodeList[Game](raw.Games, "group game", g.Name)
	if err != nil {
		log.Warn("Skipping malformed group games", "group", g.Name, "error", err)
	}
	g.Games = games

	ranking, err := decodeList[RankedCouple](raw.Ranking, "ranking entry", g.Name)
	if err != nil {
		log.Warn("Skipping malformed group ranking", "group", g.Name, "error", err)
	}
	g.Ranking = ranking
	return nil
}

// RankedCouple is a couple as listed in a group ranking.
type RankedCouple struct {
	CoupleID FlexInt  `json:"couple_id"`
	Position int      `json:"position"`
	Points   int      `json:"points"`
	Played   int      `json:"played"`
	Won      int      `json:"won"`
	Lost     int      `json:"lost"`
	SetsDiff int      `json:"sets_diff"`
	Players  []Player `json:"players"`
}

// Player is an immutable display record.
type Player struct {
	Name                string     `json:"name"`
	Level               FlexString `json:"level"`
	TournamentVictories int        `json:"tournament_victories"`
}

// FlexString accepts either a JSON string or a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("level is neither string nor number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexInt accepts a JSON number or a string holding one. Null and the empty
// string decode to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid integer id %s: %w", data, err)
	}
	*f = FlexInt(n)
	return nil
}

// Game is a single match as it appears in a group or an elimination phase.
// Couple1 and Couple2 are kept raw because their shape varies by phase and state.
type Game struct {
	GameID    FlexInt         `json:"game_id"`
	Couple1   json.RawMessage `json:"couple_1"`
	Couple2   json.RawMessage `json:"couple_2"`
	WinnerID  *FlexInt        `json:"winner_id"`
	Status    string          `json:"status_game"`
	Sets      []SetScore      `json:"sets,omitempty"`
	Scores1   []int           `json:"scores1,omitempty"`
	Scores2   []int           `json:"scores2,omitempty"`
	Date      string          `json:"date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Court     FlexString      `json:"court"`
	Label     string          `json:"game_label"`
}

// NormalizedSets returns the game's sets ordered by set number, reading either
// the sets array or the parallel scores1/scores2 arrays.
func (g Game) NormalizedSets() []SetScore {
	if len(g.Sets) > 0 {
		return SortSets(g.Sets)
	}
	n := len(g.Scores1)
	if len(g.Scores2) < n {
		n = len(g.Scores2)
	}
	sets := make([]SetScore, 0, n)
	for i := 0; i < n; i++ {
		sets = append(sets, SetScore{SetNumber: i + 1, Score1: g.Scores1[i], Score2: g.Scores2[i]})
	}
	return sets
}

// Winner returns the winner couple id, treating 0 as absent.
func (g Game) Winner() *int {
	if g.WinnerID == nil || *g.WinnerID == 0 {
		return nil
	}
	id := int(*g.WinnerID)
	return &id
}

// SetScore is one set's score, also the body of the store-set-score call.
type SetScore struct {
	GameID    int `json:"game_id,omitempty" msgpack:"game_id"`
	SetNumber int `json:"set_number" msgpack:"set_number"`
	Score1    int `json:"score_1" msgpack:"score_1"`
	Score2    int `json:"score_2" msgpack:"score_2"`
}

// SortSets returns a copy of sets ordered by set number.
func SortSets(sets []SetScore) []SetScore {
	out := make([]SetScore, len(sets))
	copy(out, sets)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SetNumber < out[j].SetNumber })
	return out
}

// GameDetail is the canonical read-back of a single game.
type GameDetail struct {
	Sets   []SetScore `json:"sets"`
	Winner *int       `json:"winner"`
	Status string     `json:"status_game"`
}

// Elimination is the phase-keyed dictionary of elimination games. Keys keeps
// the order in which phases were encountered in the document.
type Elimination struct {
	Keys  []string
	Games map[string][]Game
}

func (e *Elimination) UnmarshalJSON(data []byte) error {
	e.Keys = nil
	e.Games = make(map[string][]Game)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); ok && delim == '[' {
		// An empty list is how some backends encode an empty dictionary.
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if len(items) > 0 {
			log.Warn("Ignoring elimination list without phase names", "entries", len(items))
		}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("elimination must be an object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected elimination key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("elimination phase %q: %w", key, err)
		}
		games, err := decodeList[Game](raw, "elimination game", key)
		if err != nil {
			log.Warn("Skipping malformed elimination phase", "phase", key, "error", err)
			games = nil
		}
		if _, seen := e.Games[key]; !seen {
			e.Keys = append(e.Keys, key)
		}
		e.Games[key] = append(e.Games[key], games...)
	}
	_, err = dec.Token()
	return err
}

func (e Elimination) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		games := e.Games[key]
		if games == nil {
			games = []Game{}
		}
		b, err := json.Marshal(games)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeList accepts an array, null, or an object keyed by anything (taken in
// key order). Entries are decoded one at a time and malformed ones are
// skipped. An error is returned only when the container itself is unusable.
func decodeList[T any](raw json.RawMessage, what, owner string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var items []json.RawMessage
	switch raw[0] {
	case '{':
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(raw, &keyed); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			items = append(items, keyed[k])
		}
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s list must be an array or object, got %s", what, raw[:1])
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		if string(bytes.TrimSpace(item)) == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			log.Warn("Skipping malformed entry", "kind", what, "owner", owner, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
