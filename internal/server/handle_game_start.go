package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizline/hotseat/internal/hotseat"
)

func handleGameStart(logger *slog.Logger, engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := playerFrom(r)

		g, err := engine.StartGame(r.Context(), player.ID)
		if errors.Is(err, hotseat.ErrDuplicateActiveGame) {
			writeError(w, http.StatusConflict, "a game is already in progress")
			return
		}
		if errors.Is(err, hotseat.ErrInsufficientQuestions) {
			writeError(w, http.StatusConflict, "the question bank is not ready")
			return
		}
		if err != nil {
			logger.Error("starting game", "player_id", player.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, gameView(engine, g))
	}
}
