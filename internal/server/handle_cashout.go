package server

import (
	"net/http"

	"github.com/quizline/hotseat/internal/hotseat"
)

func handleCashOut(engine *hotseat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := loadGameForRequest(engine, w, r)
		if !ok {
			return
		}

		if err := engine.CashOut(r.Context(), g); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, gameView(engine, g))
	}
}
