package server

import (
	"errors"
	"net/http"

	"github.com/quizline/hotseat/internal/hotseat"
)

// HelpRequest is the request body for POST /api/games/{gameID}/help.
type HelpRequest struct {
	Type string `json:"type"`
}

// HelpResponse reports whether the aid was spent. Applied is false when the
// aid was already used or the game is over.
type HelpResponse struct {
	Applied bool     `json:"applied"`
	Game    GameView `json:"game"`
}

func handleHelp(engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HelpRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		kind, err := hotseat.ParseHelpKind(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "type must be one of fifty_fifty, audience_help, friend_call")
			return
		}

		g, ok := loadGameForRequest(engine, w, r)
		if !ok {
			return
		}

		applied, err := engine.UseHelp(r.Context(), g, kind)
		if errors.Is(err, hotseat.ErrInvalidHelpKind) {
			writeError(w, http.StatusBadRequest, "unknown help type")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, HelpResponse{Applied: applied, Game: gameView(engine, g)})
	}
}
