package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDisabledClient(t *testing.T) {
	c := New("")
	_, ok := c.(disabled)
	require.True(t, ok)

	assert.NoError(t, c.SendMessage(EventMatchSynced, MatchSyncedEvent{CategoryID: "cat-1"}))

	data, err := msgpack.Marshal(MatchSyncedEvent{CategoryID: "cat-1", GameID: 101, Status: "completed", Origin: "a"})
	require.NoError(t, err)
	var event MatchSyncedEvent
	require.NoError(t, c.ProcessMessage(data, &event))
	assert.Equal(t, "cat-1", event.CategoryID)
	assert.Equal(t, 101, event.GameID)
	assert.Equal(t, "a", event.Origin)
	c.Close()
}

func TestProcessMessageInvalid(t *testing.T) {
	var event MatchSyncedEvent
	assert.Error(t, disabled{}.ProcessMessage([]byte{0xc1}, &event))
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventMatchSynced, MatchSyncedEvent{GameID: 1}))

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, EventMatchSynced, sent[0].Topic)
	assert.Equal(t, MatchSyncedEvent{GameID: 1}, sent[0].Data)

	m.Close()
	assert.True(t, m.Closed)
}
