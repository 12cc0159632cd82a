package render

import (
	"sync"

	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// Options changes how node text is produced. It never changes positions.
type Options struct {
	ShowCourts bool
}

// Node is one match box. Nodes are comparable so scenes can be diffed by value.
type Node struct {
	ID      string                `json:"id"`
	GameID  int                   `json:"game_id"`
	Round   int                   `json:"round"`
	Box     bracket.Box           `json:"box"`
	Lines   [2]string             `json:"lines"`
	Caption string                `json:"caption,omitempty"`
	Scores  string                `json:"scores,omitempty"`
	Winner  bracket.WinnerSide    `json:"winner"`
	Open    bool                  `json:"open"`
	Status  tournament.GameStatus `json:"status"`
}

// Connector is the polyline drawn from a match to the slot its winner fills.
type Connector struct {
	ID     string           `json:"id"`
	Points [4]bracket.Point `json:"points"`
}

// Header titles a round column.
type Header struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Box       bracket.Box `json:"box"`
	Completed bool        `json:"completed"`
}

// Scene is the full retained render state of a category.
type Scene struct {
	CategoryID string      `json:"category_id"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Headers    []Header    `json:"headers"`
	Nodes      []Node      `json:"nodes"`
	Connectors []Connector `json:"connectors"`
	Champion   string      `json:"champion,omitempty"`
}

// Patch lists what changed between two scenes.
type Patch struct {
	CategoryID         string      `json:"category_id"`
	Width              float64     `json:"width"`
	Height             float64     `json:"height"`
	Resized            bool        `json:"resized,omitempty"`
	Headers            []Header    `json:"headers,omitempty"`
	HeadersRemoved     []string    `json:"headers_removed,omitempty"`
	Upserted           []Node      `json:"upserted,omitempty"`
	Removed            []string    `json:"removed,omitempty"`
	ConnectorsUpserted []Connector `json:"connectors_upserted,omitempty"`
	ConnectorsRemoved  []string    `json:"connectors_removed,omitempty"`
	Champion           string      `json:"champion,omitempty"`
	ChampionChanged    bool        `json:"champion_changed,omitempty"`
}

// Retained keeps the last scene sent for every category.
type Retained struct {
	mu     sync.Mutex
	scenes map[string]Scene
}
