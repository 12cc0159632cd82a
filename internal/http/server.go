package http

import (
	"net/http"

	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/config"
	"github.com/mauv0809/padel-brackets/internal/http/handlers"
	"github.com/mauv0809/padel-brackets/internal/hub"
	"github.com/mauv0809/padel-brackets/internal/live"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
	"github.com/mauv0809/padel-brackets/internal/resync"
)

func NewServer(cfg config.Config, registry *board.Registry, ctrl *resync.Controller, broadcaster *live.Broadcaster, h *hub.Hub, pubsub pubsub.PubSubClient, metricsHandler http.Handler, origin string) *Server {
	server := &Server{
		Cfg:            cfg,
		Registry:       registry,
		Resync:         ctrl,
		Broadcaster:    broadcaster,
		Hub:            h,
		PubSub:         pubsub,
		MetricsHandler: metricsHandler,
		Origin:         origin,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), requestIDMiddleware, paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /categories/{id}/bracket", Chain(handlers.BracketHandler(s.Broadcaster), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /categories/{id}/games/{gameID}/scores", Chain(handlers.ScoresHandler(s.Resync), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /ws/categories/{id}", Chain(handlers.WebsocketHandler(s.Broadcaster, s.Hub), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-synced", Chain(handlers.MatchSyncedHandler(s.Registry, s.Broadcaster, s.PubSub, s.Origin), requestIDMiddleware, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
