package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CategoryLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_category_loads_total",
			Help: "The total number of category payloads fetched from the tournament backend.",
		}),
		BracketViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_views_total",
			Help: "The total number of assembled bracket views.",
		}),
		ConnectorMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_connector_misses_total",
			Help: "Advancing slots whose label had no source match in the previous round.",
		}),
		IdentityMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_identity_misses_total",
			Help: "Matches whose winner id could not be mapped to a displayed slot.",
		}),
		Resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bracket_resyncs_total",
			Help: "Score submissions by final outcome.",
		}, []string{"outcome"}),
		ResyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bracket_resync_duration_seconds",
			Help:    "The duration of a score submission including the detail read-back.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bracket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.CategoryLoads,
		s.BracketViews,
		s.ConnectorMisses,
		s.IdentityMisses,
		s.Resyncs,
		s.ResyncDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCategoryLoads() {
	s.CategoryLoads.Inc()
}

func (s *Service) IncBracketViews() {
	s.BracketViews.Inc()
}

func (s *Service) AddConnectorMisses(n int) {
	s.ConnectorMisses.Add(float64(n))
}

func (s *Service) AddIdentityMisses(n int) {
	s.IdentityMisses.Add(float64(n))
}

func (s *Service) IncResync(outcome string) {
	s.Resyncs.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveResyncDuration(duration float64) {
	s.ResyncDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
