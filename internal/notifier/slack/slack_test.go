package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/notifier"
	"github.com/mauv0809/padel-brackets/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	calls                  int
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls++
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func completedUpdate() notifier.MatchUpdate {
	return notifier.MatchUpdate{
		CategoryID: "cat-1",
		GameID:     101,
		Phase:      "octavos",
		Label:      "J1",
		Status:     tournament.StatusCompleted,
		Sets: []tournament.SetScore{
			{SetNumber: 2, Score1: 4, Score2: 6},
			{SetNumber: 1, Score1: 6, Score2: 4},
			{SetNumber: 3, Score1: 6, Score2: 3},
		},
		Team1:      "Ana / Bea",
		Team2:      "Carla / Dani",
		WinnerTeam: 1,
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	ctx := notifier.WithDryRun(context.Background(), true)
	_, _, err := n.sendMessage(ctx, slackapi.NewBlockMessage())
	require.NoError(t, err)
	assert.Equal(t, 0, m.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.NotifyMatchSynced(context.Background(), completedUpdate())

	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.NotifyResyncFailed(context.Background(), notifier.ResyncFailure{CategoryID: "cat-1", GameID: 101, Step: "saving", Err: errors.New("timeout")})

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, m.NotifSent())
	assert.Equal(t, 1, m.NotifFailed())
}

func TestNotifyMatchSynced_SkipsUnfinished(t *testing.T) {
	api := &mockSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	u := completedUpdate()
	u.Status = tournament.StatusInProgress
	require.NoError(t, n.NotifyMatchSynced(context.Background(), u))
	assert.Equal(t, 0, api.calls)
}

func TestFormatMatchResult(t *testing.T) {
	msg := formatMatchResult(completedUpdate())
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Match finished")

	round, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Round:* octavos (J1)", round.Text.Text)

	teams, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, teams.Text.Text, "🏆 *Ana / Bea*")

	sets, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	text, ok := sets.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Sets: 6-4, 4-6, 6-3", text.Text)
}

func TestFormatResyncFailure(t *testing.T) {
	msg := formatResyncFailure(notifier.ResyncFailure{CategoryID: "cat-1", GameID: 9, Step: "syncing", Err: errors.New("bad gateway")})
	require.Len(t, msg.Blocks.BlockSet, 3)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, details.Text.Text, "*Step:* syncing")
	assert.Contains(t, details.Text.Text, "bad gateway")
}
