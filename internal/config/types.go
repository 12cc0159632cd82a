package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port      string
	Backend   BackendConfig
	Slack     SlackConfig
	ProjectID string
	Layout    LayoutConfig
}

type BackendConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether enough is configured to post to Slack.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

// LayoutConfig carries the bracket canvas dimensions in pixels.
// A zero CanvasHeight lets the layout size itself.
type LayoutConfig struct {
	CanvasHeight    float64
	Margin          float64
	MatchWidth      float64
	MatchHeight     float64
	ColumnSpacing   float64
	VerticalSpacing float64
}
