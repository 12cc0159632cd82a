package render

import (
	"fmt"
	"strings"

	"github.com/mauv0809/padel-brackets/internal/bracket"
)

const placeholder = "TBD"

// Build turns an assembled view into a scene.
func Build(v *bracket.View, opts Options) Scene {
	s := Scene{
		CategoryID: v.CategoryID,
		Width:      v.Width,
		Height:     v.Height,
		Headers:    make([]Header, 0, len(v.Rounds)),
	}
	if v.Champion.IsResolved() {
		s.Champion = slotText(v.Champion)
	}
	for r, round := range v.Rounds {
		s.Headers = append(s.Headers, Header{
			ID:        fmt.Sprintf("round-%d", r),
			Title:     round.Phase,
			Box:       round.Box,
			Completed: round.Completed,
		})
		for _, m := range round.Matches {
			s.Nodes = append(s.Nodes, buildNode(m, opts))
		}
	}
	for _, e := range v.Edges {
		s.Connectors = append(s.Connectors, Connector{
			ID:     fmt.Sprintf("edge-%d-%d-%d", e.From.GameID, e.To.GameID, e.ToSlot),
			Points: e.Path,
		})
	}
	return s
}

func buildNode(m bracket.PositionedMatch, opts Options) Node {
	n := Node{
		ID:     fmt.Sprintf("match-%d", m.GameID),
		GameID: m.GameID,
		Round:  m.Round,
		Box:    m.Box,
		Lines:  [2]string{slotText(m.Slot1), slotText(m.Slot2)},
		Scores: scoreText(m.Sets),
		Winner: m.Winner,
		Open:   m.Open,
		Status: m.Status,
	}

	var caption []string
	if m.Label != "" {
		caption = append(caption, m.Label)
	}
	if opts.ShowCourts {
		if m.Court != "" {
			caption = append(caption, m.Court)
		}
		if m.StartTime != "" {
			caption = append(caption, m.StartTime)
		}
	}
	n.Caption = strings.Join(caption, " · ")
	return n
}

func slotText(s bracket.Slot) string {
	switch s.Kind {
	case bracket.SlotResolved:
		return strings.Join(s.Names(), " / ")
	case bracket.SlotAdvancing:
		if s.Text != "" {
			return s.Text
		}
		return "Winner of " + s.Label
	default:
		if s.Text != "" {
			return s.Text
		}
		return placeholder
	}
}

func scoreText(sets []bracket.Set) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		parts = append(parts, fmt.Sprintf("%d-%d", set.Score1, set.Score2))
	}
	return strings.Join(parts, " ")
}
