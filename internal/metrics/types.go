package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	CategoryLoads      prometheus.Counter
	BracketViews       prometheus.Counter
	ConnectorMisses    prometheus.Counter
	IdentityMisses     prometheus.Counter
	Resyncs            *prometheus.CounterVec
	ResyncDuration     prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
