package http

import (
	"net/http"

	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/config"
	"github.com/mauv0809/padel-brackets/internal/hub"
	"github.com/mauv0809/padel-brackets/internal/live"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
	"github.com/mauv0809/padel-brackets/internal/resync"
)

type Server struct {
	Cfg            config.Config
	Registry       *board.Registry
	Resync         *resync.Controller
	Broadcaster    *live.Broadcaster
	Hub            *hub.Hub
	PubSub         pubsub.PubSubClient
	MetricsHandler http.Handler
	// Origin identifies this instance in pubsub events.
	Origin string
	Router *http.ServeMux
}
