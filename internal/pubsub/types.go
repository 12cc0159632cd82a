package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// disabled is used when no GCP project is configured. Messages are logged and dropped.
type disabled struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventMatchSynced is published after a score was stored and merged, so
	// other instances can reload the category.
	EventMatchSynced EventType = "match-synced"
)

// MatchSyncedEvent is the msgpack payload of EventMatchSynced.
type MatchSyncedEvent struct {
	CategoryID string `msgpack:"category_id"`
	GameID     int    `msgpack:"game_id"`
	Status     string `msgpack:"status"`
	// Origin identifies the publishing instance so it can skip its own events.
	Origin string `msgpack:"origin"`
}
