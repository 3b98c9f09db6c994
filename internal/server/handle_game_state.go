package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizline/hotseat/internal/hotseat"
)

// QuestionView is the player-facing side of the question in play. Variants
// are already shuffled; nothing here reveals which letter is correct.
type QuestionView struct {
	Level    int                       `json:"level"`
	Text     string                    `json:"text"`
	Variants map[hotseat.Letter]string `json:"variants"`
}

// GameView is the full game state returned by every game endpoint.
type GameView struct {
	ID              string               `json:"id"`
	Status          hotseat.Status       `json:"status"`
	Level           int                  `json:"level"`
	Prize           int                  `json:"prize"`
	CashOutPrize    int                  `json:"cashOutPrize"`
	Ladder          []int                `json:"ladder"`
	FireproofLevels []int                `json:"fireproofLevels"`
	CreatedAt       string               `json:"createdAt"`
	FinishedAt      *string              `json:"finishedAt,omitempty"`
	SecondsLeft     int                  `json:"secondsLeft"`
	Question        *QuestionView        `json:"question,omitempty"`
	FiftyFiftyUsed  bool                 `json:"fiftyFiftyUsed"`
	AudienceUsed    bool                 `json:"audienceHelpUsed"`
	FriendCallUsed  bool                 `json:"friendCallUsed"`
	Help            hotseat.HelpPayloads `json:"help"`
}

func gameView(engine *hotseat.Engine, g *hotseat.Game) GameView {
	view := GameView{
		ID:              g.ID,
		Status:          engine.Status(g),
		Level:           g.CurrentLevel,
		Prize:           g.Prize,
		Ladder:          hotseat.Prizes[:],
		FireproofLevels: hotseat.FireproofLevels[:],
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
		FiftyFiftyUsed:  g.FiftyFiftyUsed,
		AudienceUsed:    g.AudienceHelpUsed,
		FriendCallUsed:  g.FriendCallUsed,
	}
	if g.CurrentLevel > 0 {
		view.CashOutPrize = hotseat.Prizes[g.CurrentLevel-1]
	}
	if g.FinishedAt != nil {
		s := g.FinishedAt.Format(time.RFC3339)
		view.FinishedAt = &s
	} else {
		left := engine.TimeLimit() - time.Since(g.CreatedAt)
		if left > 0 {
			view.SecondsLeft = int(left.Seconds())
		}
	}
	if q := g.CurrentQuestion(); q != nil {
		view.Help = q.Help
		if !g.Finished() {
			view.Question = &QuestionView{
				Level:    q.Level,
				Text:     q.Question.Text,
				Variants: q.Variants(),
			}
		}
	}
	return view
}

// loadGameForRequest resolves {gameID} for the authenticated player, writing
// the error response itself when the game cannot be served.
func loadGameForRequest(engine *hotseat.Engine, w http.ResponseWriter, r *http.Request) (*hotseat.Game, bool) {
	g, err := engine.GameForPlayer(r.Context(), chi.URLParam(r, "gameID"), playerFrom(r).ID)
	if errors.Is(err, hotseat.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return g, true
}

func handleCurrentGame(engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := engine.ActiveGameFor(r.Context(), playerFrom(r).ID)
		if errors.Is(err, hotseat.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no game in progress")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// A stale game is finalized as a timeout on read, so the view
		// below already reflects the loss.
		if _, err := engine.CheckTimeout(r.Context(), g); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, gameView(engine, g))
	}
}

func handleGameShow(engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := loadGameForRequest(engine, w, r)
		if !ok {
			return
		}
		if _, err := engine.CheckTimeout(r.Context(), g); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, gameView(engine, g))
	}
}
