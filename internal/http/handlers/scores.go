package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/resync"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

// ScoresRequest is the body of POST /categories/{id}/games/{gameID}/scores.
type ScoresRequest struct {
	Sets []tournament.SetScore `json:"sets"`
}

func ScoresHandler(ctrl *resync.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.PathValue("id")
		gameID, err := pathInt(r, "gameID")
		if err != nil {
			http.Error(w, "Invalid game id", http.StatusBadRequest)
			return
		}

		var req ScoresRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode scores request", "error", err)
			writeError(w, fmt.Errorf("%w: %v", resync.ErrInvalidSet, err))
			return
		}

		result, err := ctrl.Submit(r.Context(), categoryID, gameID, req.Sets)
		if err != nil {
			log.Error("Score submission failed", "categoryID", categoryID, "gameID", gameID, "error", err)
			if result.State == resync.StateError {
				writeJSON(w, statusFor(err), result)
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
