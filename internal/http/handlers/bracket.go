package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/hub"
	"github.com/mauv0809/padel-brackets/internal/live"
	"github.com/mauv0809/padel-brackets/internal/render"
)

// BracketResponse is the body of GET /categories/{id}/bracket.
type BracketResponse struct {
	Scene       render.Scene        `json:"scene"`
	Diagnostics bracket.Diagnostics `json:"diagnostics"`
}

func BracketHandler(broadcaster *live.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.PathValue("id")
		reload := r.URL.Query().Get("reload") == "true"
		opts := render.Options{ShowCourts: r.URL.Query().Get("show_courts") == "true"}
		log.Debug("Received bracket request", "categoryID", categoryID, "reload", reload, "showCourts", opts.ShowCourts)

		scene, diag, err := broadcaster.Scene(r.Context(), categoryID, reload, opts)
		if err != nil {
			log.Error("Failed to build bracket", "categoryID", categoryID, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, BracketResponse{Scene: scene, Diagnostics: diag})
	}
}

// WebsocketHandler subscribes the connection to its category's room. The
// first message is the full retained scene, later ones are patches.
func WebsocketHandler(broadcaster *live.Broadcaster, h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.PathValue("id")
		if err := broadcaster.Ensure(r.Context(), categoryID); err != nil {
			log.Error("Failed to load category for websocket", "categoryID", categoryID, "error", err)
			writeError(w, err)
			return
		}
		client, err := h.Upgrade(w, r, categoryID)
		if err != nil {
			log.Error("Failed to open websocket", "categoryID", categoryID, "error", err)
			return
		}
		if err := broadcaster.Join(r.Context(), client); err != nil {
			log.Warn("Websocket viewer was not subscribed", "categoryID", categoryID, "error", err)
		}
	}
}
