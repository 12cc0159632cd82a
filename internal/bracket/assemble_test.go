package bracket

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mauv0809/padel-brackets/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// octavosPayload has eight ranked couples (ids 1..8), four octavos matches
// labeled J1..J4, two cuartos matches waiting on them, a semifinal and an
// empty final. Phase keys are deliberately out of order.
func octavosPayload(t *testing.T) *tournament.CategoryPayload {
	t.Helper()

	var ranking []string
	for id := 1; id <= 8; id++ {
		ranking = append(ranking, fmt.Sprintf(`{"couple_id": %d, "position": %d, "players": [{"name": "Jugador %da"}, {"name": "Jugador %db"}]}`, id, id, id, id))
	}
	var octavos []string
	for i := 0; i < 4; i++ {
		a, b := 2*i+1, 2*i+2
		octavos = append(octavos, fmt.Sprintf(
			`{"game_id": %d, "game_label": "J%d", "status_game": "not_started", "court": "Pista %d",
			  "couple_1": {"players": [{"name": "Jugador %da"}, {"name": "Jugador %db"}]},
			  "couple_2": [{"name": "Jugador %da"}, {"name": "Jugador %db"}]}`,
			100+i+1, i+1, i+1, a, a, b, b))
	}

	doc := fmt.Sprintf(`{
		"groups": [{"group_name": "Grupo A", "games": [], "ranking": [%s]}],
		"elimination": {
			"final": [],
			"semifinal": [{"game_id": 301, "game_label": "S1", "status_game": "not_started", "couple_1": {"pending": "Winner of Q1"}, "couple_2": {"pending": "Winner of Q2"}}],
			"cuartos": [
				{"game_id": 201, "game_label": "Q1", "status_game": "not_started", "couple_1": {"pending": "Winner of J1"}, "couple_2": {"pending": "Winner of J2"}},
				{"game_id": 202, "game_label": "Q2", "status_game": "not_started", "couple_1": {"pending": "Winner of J3"}, "couple_2": {"pending": "Winner of J4"}}
			],
			"octavos": [%s]
		}
	}`, strings.Join(ranking, ","), strings.Join(octavos, ","))

	var payload tournament.CategoryPayload
	require.NoError(t, json.Unmarshal([]byte(doc), &payload))
	return &payload
}

// complete marks an octavos match as won by the first couple.
func complete(c *Category, gameID int) {
	for p := range c.Phases {
		for i := range c.Phases[p].Matches {
			m := &c.Phases[p].Matches[i]
			if m.GameID != gameID {
				continue
			}
			winner := 2*(gameID-100) - 1
			m.WinnerID = &winner
			m.Status = tournament.StatusCompleted
			m.Sets = []Set{{Number: 1, Score1: 6, Score2: 2}, {Number: 2, Score1: 6, Score2: 3}}
		}
	}
}

func openByGame(v *View) map[int]bool {
	open := make(map[int]bool)
	for _, r := range v.Rounds {
		for _, m := range r.Matches {
			open[m.GameID] = m.Open
		}
	}
	return open
}

func TestFromPayload(t *testing.T) {
	c := FromPayload("cat-1", octavosPayload(t))

	require.Len(t, c.Phases, 4)
	assert.Equal(t, []string{"octavos", "cuartos", "semifinal", "final"}, []string{c.Phases[0].Key, c.Phases[1].Key, c.Phases[2].Key, c.Phases[3].Key})
	assert.Len(t, c.Phases[0].Matches, 4)
	assert.Empty(t, c.Phases[3].Matches)

	first := c.Phases[0].Matches[0]
	assert.Equal(t, SlotResolved, first.Slot1.Kind)
	assert.Equal(t, SlotResolved, first.Slot2.Kind)
	assert.Equal(t, "Pista 1", first.Court)
	assert.Equal(t, 0, first.Round)

	q1 := c.Phases[1].Matches[0]
	assert.Equal(t, advancing("J1"), q1.Slot1)
	assert.Equal(t, 1, q1.Round)
	assert.Equal(t, SlotUnresolved, c.Champion.Kind)

	require.Len(t, c.Groups, 1)
	assert.Len(t, c.Groups[0].Ranking, 8)
}

func TestFromPayload_Nil(t *testing.T) {
	c := FromPayload("x", nil)
	assert.Equal(t, "x", c.ID)
	assert.Empty(t, c.Phases)
}

func TestFromPayload_Champion(t *testing.T) {
	payload := octavosPayload(t)
	payload.Winner = json.RawMessage(`3`)
	c := FromPayload("cat-1", payload)
	assert.Equal(t, resolved("Jugador 3a", "Jugador 3b"), c.Champion)

	payload.Winner = json.RawMessage(`{"players":[{"name":"Eva"}]}`)
	assert.Equal(t, resolved("Eva"), FromPayload("cat-1", payload).Champion)
}

func TestAssemble_RoundLevelGating(t *testing.T) {
	t.Run("nothing completed", func(t *testing.T) {
		c := FromPayload("cat-1", octavosPayload(t))
		v := Assemble(c, Options{})
		open := openByGame(v)
		for id := 101; id <= 104; id++ {
			assert.True(t, open[id], "octavos match %d has both couples", id)
		}
		assert.False(t, open[201])
		assert.False(t, open[202])
		assert.False(t, open[301])
	})

	t.Run("completing only J1 opens no cuartos match", func(t *testing.T) {
		c := FromPayload("cat-1", octavosPayload(t))
		complete(c, 101)
		v := Assemble(c, Options{})

		q1, ok := v.Find(201)
		require.True(t, ok)
		assert.Equal(t, resolved("Jugador 1a", "Jugador 1b"), q1.Slot1, "the J1 winner advances")
		assert.Equal(t, SlotAdvancing, q1.Slot2.Kind)

		open := openByGame(v)
		assert.False(t, open[201])
		assert.False(t, open[202])
	})

	t.Run("a fully resolved cuartos match stays closed until the round is done", func(t *testing.T) {
		c := FromPayload("cat-1", octavosPayload(t))
		complete(c, 101)
		complete(c, 102)
		v := Assemble(c, Options{})

		q1, _ := v.Find(201)
		assert.True(t, q1.Slot1.IsResolved())
		assert.True(t, q1.Slot2.IsResolved())
		assert.False(t, q1.Open, "gating is per round, not per dependency chain")
	})

	t.Run("completing all octavos opens both cuartos matches", func(t *testing.T) {
		c := FromPayload("cat-1", octavosPayload(t))
		for id := 101; id <= 104; id++ {
			complete(c, id)
		}
		v := Assemble(c, Options{})

		open := openByGame(v)
		assert.True(t, open[201])
		assert.True(t, open[202])
		assert.False(t, open[301], "cuartos are not played yet")
		assert.True(t, v.Rounds[0].Completed)

		for id := 101; id <= 104; id++ {
			m, _ := v.Find(id)
			assert.Equal(t, WinnerSlot1, m.Winner)
		}
	})

	t.Run("the category is not modified", func(t *testing.T) {
		c := FromPayload("cat-1", octavosPayload(t))
		complete(c, 101)
		Assemble(c, Options{})
		assert.Equal(t, SlotAdvancing, c.Phases[1].Matches[0].Slot1.Kind)
	})
}

func TestAssemble_EdgesAndLayout(t *testing.T) {
	c := FromPayload("cat-1", octavosPayload(t))
	v := Assemble(c, Options{CanvasHeight: 800})

	require.Len(t, v.Edges, 6, "four octavos->cuartos plus two cuartos->semifinal")
	assert.Zero(t, v.Diagnostics.ConnectorMisses)
	assert.Equal(t, 800.0, v.Height)

	e := v.Edges[0]
	from := v.Rounds[e.From.Round].Matches[e.From.Index]
	to := v.Rounds[e.To.Round].Matches[e.To.Index]
	assert.Equal(t, from.Box.CenterY(), e.Path[0].Y)
	assert.Equal(t, to.Box.X, e.Path[3].X)
	assert.Equal(t, 101, e.From.GameID)
	assert.Equal(t, 201, e.To.GameID)

	assert.Empty(t, v.Rounds[3].Matches)
	assert.Equal(t, "final", v.Rounds[3].Phase)
}

func TestAssemble_Diagnostics(t *testing.T) {
	winner := 77
	c := &Category{
		ID: "diag",
		Phases: []Phase{
			{Key: "cuartos", Rank: 2, Matches: []Match{
				{GameID: 1, Label: "Q1", Slot1: resolved("A"), Slot2: resolved("B"), WinnerID: &winner, Status: tournament.StatusCompleted},
			}},
			{Key: "consolation", Rank: UnknownPhaseRank, Matches: []Match{
				{GameID: 2, Slot1: advancing("Q9"), Slot2: Slot{Kind: SlotAdvancing, Text: "TBD"}},
			}},
		},
	}

	v := Assemble(c, Options{})

	assert.Equal(t, 2, v.Diagnostics.ConnectorMisses)
	assert.Equal(t, 1, v.Diagnostics.IdentityMisses)
	assert.Equal(t, []string{"consolation"}, v.Diagnostics.UnknownPhases)
	assert.Empty(t, v.Edges)
	m, _ := v.Find(1)
	assert.Equal(t, WinnerNone, m.Winner, "an unmapped winner id is not highlighted")
}

func TestAssemble_ChampionFromFinal(t *testing.T) {
	winner := 1
	c := &Category{
		ID:     "champ",
		Groups: []GroupStanding{{Ranking: []Standing{{Couple: couple(1, "Ana", "Bea")}, {Couple: couple(2, "Carla", "Dani")}}}},
		Phases: []Phase{{Key: "final", Rank: 4, Matches: []Match{
			{GameID: 9, Slot1: resolved("Carla", "Dani"), Slot2: resolved("Bea", "Ana"), WinnerID: &winner, Status: tournament.StatusCompleted},
		}}},
	}

	v := Assemble(c, Options{})

	assert.Equal(t, resolved("Bea", "Ana"), v.Champion)
	_, ok := v.Find(404)
	assert.False(t, ok)
}

func TestAssemble_MalformedGameStaysLocal(t *testing.T) {
	doc := `{
		"groups": [{"group_name": "Grupo A", "ranking": [
			{"couple_id": "7", "players": [{"name": "Ana"}, {"name": "Bea"}]},
			{"couple_id": 8, "players": [{"name": "Carla"}, {"name": "Dani"}]}
		]}],
		"elimination": {
			"cuartos": [{"game_id": 201, "game_label": "Q1", "couple_1": {"pending": "Winner of J1"}, "couple_2": {"pending": "Winner of J2"}}],
			"octavos": [
				{"game_id": 101, "game_label": "J1", "winner_id": [7]},
				{"game_id": 102, "game_label": "J2", "status_game": "completed", "winner_id": "7",
				 "couple_1": [{"name": "Ana"}, {"name": "Bea"}], "couple_2": [{"name": "Carla"}, {"name": "Dani"}]}
			]
		}
	}`
	var payload tournament.CategoryPayload
	require.NoError(t, json.Unmarshal([]byte(doc), &payload))

	c := FromPayload("cat-1", &payload)
	require.Len(t, c.Phases, 2)
	assert.Equal(t, "octavos", c.Phases[0].Key)
	assert.Len(t, c.Phases[0].Matches, 1)
	assert.Equal(t, 1, c.Phases[1].Matches[0].Round, "cuartos keeps its round index")
	assert.Equal(t, 7, c.Groups[0].Ranking[0].Couple.ID)

	v := Assemble(c, Options{})
	require.Len(t, v.Edges, 1, "only the missing J1 loses its connector")
	assert.Equal(t, 102, v.Edges[0].From.GameID)
	assert.Equal(t, 1, v.Diagnostics.ConnectorMisses)

	q1, ok := v.Find(201)
	require.True(t, ok)
	assert.Equal(t, resolved("Ana", "Bea"), q1.Slot2)
}
