package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncCategoryLoads()
	IncBracketViews()
	AddConnectorMisses(n int)
	AddIdentityMisses(n int)
	IncResync(outcome string)
	ObserveResyncDuration(duration float64)
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

// Resync outcomes used as label values.
const (
	OutcomeDone    = "done"
	OutcomeError   = "error"
	OutcomeStale   = "stale"
	OutcomeGated   = "gated"
	OutcomeInvalid = "invalid"
)
