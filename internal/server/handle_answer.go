package server

import (
	"net/http"

	"github.com/quizline/hotseat/internal/hotseat"
)

// AnswerRequest is the request body for POST /api/games/{gameID}/answer.
type AnswerRequest struct {
	Letter string `json:"letter"`
}

// AnswerResponse reports whether the answer was accepted. Accepted is false
// both for a wrong answer and for a game that was already over; the game's
// status tells the two apart. CorrectAnswer is revealed only once the game
// has ended on a wrong answer.
type AnswerResponse struct {
	Accepted      bool     `json:"accepted"`
	Game          GameView `json:"game"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

func handleAnswer(engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		letter, ok := hotseat.ParseLetter(req.Letter)
		if !ok {
			writeError(w, http.StatusBadRequest, "letter must be one of a, b, c, d")
			return
		}

		g, ok := loadGameForRequest(engine, w, r)
		if !ok {
			return
		}
		question := g.CurrentQuestion()

		accepted, err := engine.Answer(r.Context(), g, letter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := AnswerResponse{Accepted: accepted, Game: gameView(engine, g)}
		if !accepted && g.Finished() && g.IsFailed && question != nil {
			resp.CorrectAnswer = question.CorrectAnswer()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
