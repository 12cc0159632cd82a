package bracket

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// FromPayload normalizes a backend category payload: phases are put in
// canonical order and every slot is classified.
func FromPayload(categoryID string, p *tournament.CategoryPayload) *Category {
	c := &Category{ID: categoryID}
	if p == nil {
		return c
	}

	for _, g := range p.Groups {
		gs := GroupStanding{Name: g.Name}
		for _, rc := range g.Ranking {
			gs.Ranking = append(gs.Ranking, Standing{
				Couple:   Couple{ID: int(rc.CoupleID), Players: convertPlayers(rc.Players)},
				Position: rc.Position,
				Points:   rc.Points,
				Played:   rc.Played,
				Won:      rc.Won,
				Lost:     rc.Lost,
			})
		}
		c.Groups = append(c.Groups, gs)
	}

	for idx, key := range OrderPhases(p.Elimination.Keys) {
		rank, known := PhaseRank(key)
		if !known {
			log.Warn("Unknown phase name, sorting it last", "categoryID", categoryID, "phase", key)
		}
		phase := Phase{Key: key, Rank: rank}
		for _, g := range p.Elimination.Games[key] {
			phase.Matches = append(phase.Matches, matchFromGame(g, key, idx))
		}
		c.Phases = append(c.Phases, phase)
	}

	c.Champion = championFrom(p.Winner, c.Groups)
	return c
}

func matchFromGame(g tournament.Game, phase string, round int) Match {
	return Match{
		GameID:    int(g.GameID),
		Phase:     phase,
		Round:     round,
		Label:     g.Label,
		Slot1:     ResolveSlot(g.Couple1, round == 0),
		Slot2:     ResolveSlot(g.Couple2, round == 0),
		Status:    tournament.ParseStatus(g.Status),
		WinnerID:  g.Winner(),
		Sets:      SetsFromScores(g.NormalizedSets()),
		Court:     string(g.Court),
		Date:      g.Date,
		StartTime: g.StartTime,
		EndTime:   g.EndTime,
	}
}

// SetsFromScores converts wire set scores, keeping their order.
func SetsFromScores(scores []tournament.SetScore) []Set {
	sets := make([]Set, 0, len(scores))
	for _, s := range scores {
		sets = append(sets, Set{Number: s.SetNumber, Score1: s.Score1, Score2: s.Score2})
	}
	return sets
}

func convertPlayers(in []tournament.Player) []Player {
	out := make([]Player, 0, len(in))
	for _, p := range in {
		out = append(out, Player{Name: p.Name, Level: string(p.Level), TournamentVictories: p.TournamentVictories})
	}
	return out
}

// championFrom reads the optional category winner, given either as a couple
// id or as a slot-shaped value.
func championFrom(raw json.RawMessage, groups []GroupStanding) Slot {
	raw = bytes.TrimSpace(raw)
	if id, err := strconv.Atoi(string(raw)); err == nil {
		for _, g := range groups {
			for _, st := range g.Ranking {
				if st.Couple.ID == id && len(st.Couple.Players) > 0 {
					return Slot{Kind: SlotResolved, Players: append([]Player(nil), st.Couple.Players...)}
				}
			}
		}
		return Slot{Kind: SlotUnresolved}
	}
	s := ResolveSlot(raw, false)
	if !s.IsResolved() {
		return Slot{Kind: SlotUnresolved}
	}
	return s
}

// Options controls layout when assembling a view.
type Options struct {
	Dimensions   Dimensions
	CanvasHeight float64
}

// PositionedMatch is a match with everything a renderer needs.
type PositionedMatch struct {
	Match
	Box    Box        `json:"box"`
	Winner WinnerSide `json:"winner"`
	Open   bool       `json:"open"`
}

// Round is one phase column of the view.
type Round struct {
	Phase     string            `json:"phase"`
	Rank      int               `json:"rank"`
	Completed bool              `json:"completed"`
	Box       Box               `json:"box"`
	Matches   []PositionedMatch `json:"matches"`
}

// PositionedEdge is an edge with its connector polyline.
type PositionedEdge struct {
	Edge
	Path [4]Point `json:"path"`
}

// Diagnostics counts the localized data-quality misses found while assembling.
type Diagnostics struct {
	ConnectorMisses int      `json:"connector_misses"`
	IdentityMisses  int      `json:"identity_misses"`
	UnknownPhases   []string `json:"unknown_phases,omitempty"`
}

// View is the render-ready bracket.
type View struct {
	CategoryID  string           `json:"category_id"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Rounds      []Round          `json:"rounds"`
	Edges       []PositionedEdge `json:"edges"`
	Champion    Slot             `json:"champion"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}

// Find locates a match by game id.
func (v *View) Find(gameID int) (*PositionedMatch, bool) {
	for r := range v.Rounds {
		for i := range v.Rounds[r].Matches {
			if v.Rounds[r].Matches[i].GameID == gameID {
				return &v.Rounds[r].Matches[i], true
			}
		}
	}
	return nil, false
}

// Assemble runs the whole pipeline over a normalized category: winner
// identification, advancement edges, winner propagation, gating and layout.
// The category itself is not modified.
func Assemble(c *Category, opts Options) *View {
	if opts.Dimensions == (Dimensions{}) {
		opts.Dimensions = DefaultDimensions()
	}

	rounds := make([][]Match, len(c.Phases))
	for r, ph := range c.Phases {
		rounds[r] = make([]Match, len(ph.Matches))
		for i, m := range ph.Matches {
			rounds[r][i] = m.Clone()
			rounds[r][i].Round = r
		}
	}

	// Edges depend only on labels, so they are fixed before any winner moves.
	edges := BuildEdges(rounds)
	incoming := make([][]Edge, len(rounds))
	for _, e := range edges {
		incoming[e.To.Round] = append(incoming[e.To.Round], e)
	}

	matcher := NewIdentityMatcher(c.Groups)
	winners := make([][]WinnerSide, len(rounds))
	diag := Diagnostics{}
	for r := range rounds {
		if r > 0 {
			pending := 0
			for _, m := range rounds[r] {
				for n := 1; n <= 2; n++ {
					if m.Slot(n).Kind == SlotAdvancing {
						pending++
					}
				}
			}
			diag.ConnectorMisses += pending - len(incoming[r])
			propagate(rounds, incoming[r], winners)
		}

		winners[r] = make([]WinnerSide, len(rounds[r]))
		for i, m := range rounds[r] {
			w := matcher.Winner(m)
			winners[r][i] = w
			if w == WinnerNone && m.WinnerID != nil && m.Slot1.IsResolved() && m.Slot2.IsResolved() {
				diag.IdentityMisses++
			}
		}
	}
	for _, ph := range c.Phases {
		if _, known := PhaseRank(ph.Key); !known {
			diag.UnknownPhases = append(diag.UnknownPhases, ph.Key)
		}
	}

	layout := ComputeLayout(rounds, opts.CanvasHeight, opts.Dimensions)
	v := &View{
		CategoryID:  c.ID,
		Width:       layout.Width,
		Height:      layout.Height,
		Rounds:      make([]Round, len(rounds)),
		Champion:    c.Champion,
		Diagnostics: diag,
	}
	for r, round := range rounds {
		vr := Round{
			Phase:     c.Phases[r].Key,
			Rank:      c.Phases[r].Rank,
			Completed: RoundCompleted(round),
			Box:       layout.Rounds[r],
			Matches:   make([]PositionedMatch, len(round)),
		}
		for i, m := range round {
			vr.Matches[i] = PositionedMatch{
				Match:  m,
				Box:    layout.Matches[r][i],
				Winner: winners[r][i],
				Open:   CanScore(rounds, r, i),
			}
		}
		v.Rounds[r] = vr
	}
	for _, e := range edges {
		v.Edges = append(v.Edges, PositionedEdge{
			Edge: e,
			Path: EdgePath(layout.Matches[e.From.Round][e.From.Index], layout.Matches[e.To.Round][e.To.Index]),
		})
	}

	if !v.Champion.IsResolved() && len(rounds) > 0 {
		last := rounds[len(rounds)-1]
		if len(last) == 1 {
			switch winners[len(rounds)-1][0] {
			case WinnerSlot1:
				v.Champion = last[0].Slot1.clone()
			case WinnerSlot2:
				v.Champion = last[0].Slot2.clone()
			}
		}
	}
	return v
}
