package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameKey(t *testing.T) {
	assert.Equal(t, "jose perez,maria nunez", NameKey([]string{"María  Núñez", "José Pérez"}))
	assert.Equal(t, NameKey([]string{"Ana", "Bea"}), NameKey([]string{"bea", "ANA"}))
	assert.Equal(t, "", NameKey([]string{" "}))
}

func TestIdentityMatcher_Winner(t *testing.T) {
	groups := []GroupStanding{
		{Name: "A", Ranking: []Standing{
			{Couple: couple(10, "Ana López", "Bea Ruiz")},
			{Couple: couple(20, "Carla Gómez", "Dani Sanz")},
		}},
	}
	m := NewIdentityMatcher(groups)
	assert.Equal(t, 2, m.Len())

	match := Match{
		Slot1: resolved("Bea Ruiz", "Ana Lopez"),
		Slot2: resolved("carla gomez", "Dani Sanz"),
	}

	t.Run("winner in slot 1", func(t *testing.T) {
		match.WinnerID = intPtr(10)
		assert.Equal(t, WinnerSlot1, m.Winner(match))
	})

	t.Run("winner in slot 2", func(t *testing.T) {
		match.WinnerID = intPtr(20)
		assert.Equal(t, WinnerSlot2, m.Winner(match))
	})

	t.Run("unknown winner id is no highlight", func(t *testing.T) {
		match.WinnerID = intPtr(99)
		assert.Equal(t, WinnerNone, m.Winner(match))
	})

	t.Run("no winner", func(t *testing.T) {
		match.WinnerID = nil
		assert.Equal(t, WinnerNone, m.Winner(match))
	})

	t.Run("winner not shown in either slot", func(t *testing.T) {
		other := Match{Slot1: resolved("Eva"), Slot2: resolved("Fran"), WinnerID: intPtr(10)}
		assert.Equal(t, WinnerNone, m.Winner(other))
	})

	t.Run("unresolved slot skips computation", func(t *testing.T) {
		pending := Match{Slot1: resolved("Ana López", "Bea Ruiz"), Slot2: Slot{Kind: SlotAdvancing, Label: "J2"}, WinnerID: intPtr(10)}
		assert.Equal(t, WinnerNone, m.Winner(pending))
	})

	t.Run("identical names on both sides is ambiguous", func(t *testing.T) {
		same := Match{Slot1: resolved("Ana López", "Bea Ruiz"), Slot2: resolved("Ana López", "Bea Ruiz"), WinnerID: intPtr(10)}
		assert.Equal(t, WinnerNone, m.Winner(same))
	})
}

func TestIdentityMatcher_Candidates(t *testing.T) {
	m := NewIdentityMatcher([]GroupStanding{{Ranking: []Standing{
		{Couple: couple(1, "Ana", "Bea")},
		{Couple: couple(2, "Bea", "Ana")},
		{Couple: couple(3)},
	}}})
	assert.Equal(t, []int{1, 2}, m.Candidates(resolved("ana", "bea")))
	assert.Nil(t, m.Candidates(Slot{Kind: SlotUnresolved}))
	_, ok := m.NameKey(3)
	assert.False(t, ok, "couples without names are not indexed")
}

func TestWinnerSideText(t *testing.T) {
	for _, w := range []WinnerSide{WinnerNone, WinnerSlot1, WinnerSlot2} {
		text, err := w.MarshalText()
		require.NoError(t, err)
		var back WinnerSide
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, w, back)
	}
	var w WinnerSide
	assert.Error(t, w.UnmarshalText([]byte("slot_3")))
}
