package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/resync"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resync.ErrInvalidSet):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrUnknownCategory), errors.Is(err, board.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, resync.ErrGated):
		return http.StatusConflict
	default:
		// Everything else failed talking to the tournament backend.
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.PathValue(name))
}
