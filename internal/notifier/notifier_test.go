package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulti(t *testing.T) {
	first := NewMock()
	second := NewMock()
	boom := errors.New("boom")
	first.NotifyResyncFailedFunc = func(failure ResyncFailure) error { return boom }

	n := Multi(first, nil, second)

	require.NoError(t, n.NotifyMatchSynced(context.Background(), MatchUpdate{GameID: 7}))
	assert.Len(t, first.SyncedCalls(), 1)
	assert.Len(t, second.SyncedCalls(), 1)

	err := n.NotifyResyncFailed(context.Background(), ResyncFailure{GameID: 7, Step: "saving"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, second.FailedCalls(), 1, "later notifiers still run after a failure")
}

func TestDryRun(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsDryRun(ctx))
	assert.True(t, IsDryRun(WithDryRun(ctx, true)))
	assert.False(t, IsDryRun(WithDryRun(ctx, false)))
}
