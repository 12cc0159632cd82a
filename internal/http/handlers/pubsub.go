package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/live"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
)

// MatchSyncedHandler receives match-synced push messages from other
// instances and reloads the category when it is loaded here.
func MatchSyncedHandler(registry *board.Registry, broadcaster *live.Broadcaster, pubsubClient pubsub.PubSubClient, origin string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match synced message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var event pubsub.MatchSyncedEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if event.Origin == origin {
			log.Debug("Ignoring own match synced event", "categoryID", event.CategoryID, "gameID", event.GameID)
			w.Write([]byte("OK"))
			return
		}
		if _, ok := registry.Get(event.CategoryID); !ok {
			log.Debug("Category not loaded here, nothing to refresh", "categoryID", event.CategoryID)
			w.Write([]byte("OK"))
			return
		}
		if _, err := registry.Load(r.Context(), event.CategoryID); err != nil {
			// Returning an error makes Pub/Sub redeliver.
			http.Error(w, "Failed to reload category", http.StatusBadGateway)
			return
		}
		broadcaster.Publish(event.CategoryID)
		log.Info("Reloaded category after remote score", "categoryID", event.CategoryID, "gameID", event.GameID, "origin", event.Origin)
		w.Write([]byte("OK"))
	}
}
