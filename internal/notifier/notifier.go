package notifier

import (
	"context"
	"errors"

	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about bracket events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a score submission was stored and read back
	NotifyMatchSynced(ctx context.Context, update MatchUpdate) error
	// When a score submission failed at one of its network steps
	NotifyResyncFailed(ctx context.Context, failure ResyncFailure) error
}

// MatchUpdate describes a match whose canonical state was just merged.
type MatchUpdate struct {
	CategoryID string
	GameID     int
	Phase      string
	Label      string
	Status     tournament.GameStatus
	Sets       []tournament.SetScore
	Team1      string
	Team2      string
	// WinnerTeam is 1 or 2, or 0 while the winner is unknown.
	WinnerTeam int
}

// ResyncFailure describes a score submission that did not complete.
type ResyncFailure struct {
	CategoryID string
	GameID     int
	// Step is the resync state the failure happened in.
	Step string
	Err  error
}

type multi []Notifier

// Multi fans every notification out to all given notifiers. Every notifier is
// called even when an earlier one fails; the errors are joined.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) NotifyMatchSynced(ctx context.Context, update MatchUpdate) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyMatchSynced(ctx, update); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) NotifyResyncFailed(ctx context.Context, failure ResyncFailure) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyResyncFailed(ctx, failure); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type dryRunKey struct{}

// WithDryRun marks the context so notifiers only log what they would send.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, dryRun)
}

// IsDryRun reports whether the context was marked with WithDryRun.
func IsDryRun(ctx context.Context) bool {
	dryRun, ok := ctx.Value(dryRunKey{}).(bool)
	return ok && dryRun
}
